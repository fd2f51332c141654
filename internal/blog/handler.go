package blog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/blogsapi/pkg"
)

type newBlogRequest struct {
	Title  string  `json:"title" validate:"required"`
	Author string  `json:"author" validate:"required"`
	URL    *string `json:"url" validate:"required"`
	Likes  *int    `json:"likes" validate:"omitempty,min=0,max=2147483647"`
}

func (req newBlogRequest) toBlog() *Blog {
	b := &Blog{
		Title:  req.Title,
		Author: req.Author,
	}
	if req.URL != nil {
		b.URL = *req.URL
	}
	if req.Likes != nil {
		b.Likes = *req.Likes
	}
	return b
}

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=blog_test

type blogService interface {
	AddBlog(ctx context.Context, blog *Blog) error
	All(ctx context.Context) ([]*Blog, error)
	GetBlog(ctx context.Context, id int) (*Blog, error)
	UpdateBlog(ctx context.Context, id int, update BlogUpdate) (*Blog, error)
	DeleteBlog(ctx context.Context, id int) error
}

type Handler struct {
	service  blogService
	validate *validator.Validate
}

func NewBlogHandler(service blogService) *Handler {
	return &Handler{
		service:  service,
		validate: newValidator(),
	}
}

// SetupRoutes registers the blog routes. writeMiddlewares wrap only the routes that modify blogs.
func (handler *Handler) SetupRoutes(router *mux.Router, writeMiddlewares ...mux.MiddlewareFunc) {
	writes := func(h http.HandlerFunc) http.Handler {
		var wrapped http.Handler = h
		for i := len(writeMiddlewares) - 1; i >= 0; i-- {
			wrapped = writeMiddlewares[i](wrapped)
		}
		return wrapped
	}

	router.HandleFunc("/blogs", handler.handleAll).Methods("GET").Name("all-blogs")
	router.Handle("/blogs", writes(handler.handleNewBlog)).Methods("POST", "OPTIONS").Name("new-blog")
	router.HandleFunc("/blogs/{id}", handler.handleGetBlog).Methods("GET").Name("get-blog")
	router.Handle("/blogs/{id}", writes(handler.handleUpdateBlog)).Methods("PUT", "OPTIONS").Name("update-blog")
	router.Handle("/blogs/{id}", writes(handler.handleDeleteBlog)).Methods("DELETE").Name("delete-blog")
}

func (handler *Handler) handleNewBlog(w http.ResponseWriter, r *http.Request) {
	var newBlogReq newBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&newBlogReq); err != nil {
		log.Debugf("new blog, unmarshal json params: %s", err)
		pkg.WriteErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := handler.validate.Struct(newBlogReq); err != nil {
		pkg.WriteErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	newBlog := newBlogReq.toBlog()
	if err := handler.service.AddBlog(r.Context(), newBlog); err != nil {
		writeServiceError(w, err, opCreate, 0)
		return
	}

	log.Tracef("new blog %d: [%s] added", newBlog.ID, newBlog.Title)

	pkg.WriteJSONResponse(w, newBlog, http.StatusCreated)
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	allBlogs, err := handler.service.All(r.Context())
	if err != nil {
		writeServiceError(w, err, opList, 0)
		return
	}
	if allBlogs == nil {
		allBlogs = []*Blog{}
	}

	pkg.WriteJSONResponse(w, allBlogs, http.StatusOK)
}

func (handler *Handler) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := blogID(w, r)
	if !ok {
		return
	}

	b, err := handler.service.GetBlog(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, opGet, id)
		return
	}

	pkg.WriteJSONResponse(w, b, http.StatusOK)
}

func (handler *Handler) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := blogID(w, r)
	if !ok {
		return
	}

	var update BlogUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Debugf("update blog %d, unmarshal json params: %s", id, err)
		pkg.WriteErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := handler.validate.Struct(update); err != nil {
		pkg.WriteErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	b, err := handler.service.UpdateBlog(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err, opUpdate, id)
		return
	}

	pkg.WriteJSONResponse(w, b, http.StatusOK)
}

func (handler *Handler) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := blogID(w, r)
	if !ok {
		return
	}

	if err := handler.service.DeleteBlog(r.Context(), id); err != nil {
		writeServiceError(w, err, opDelete, id)
		return
	}

	pkg.WriteResponseBytes(w, "", nil, http.StatusOK)
}

// blogID parses the path id. Ids are int4 in the db, so anything wider is rejected here.
func blogID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 32)
	if err != nil {
		pkg.WriteErrorResponse(w, http.StatusBadRequest, msgInvalidBlogID)
		return 0, false
	}
	return int(id), true
}
