package blog

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/blogsapi/pkg"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgInvalidBlogID = "Invalid blog id"
	msgBlogNotFound  = "Blog not found"
)

type operation string

const (
	opCreate operation = "create"
	opList   operation = "list"
	opGet    operation = "get"
	opUpdate operation = "update"
	opDelete operation = "delete"
)

var failMessages = map[operation]string{
	opCreate: "Failed to create blog",
	opList:   "Failed to retrieve blogs",
	opGet:    "Failed to retrieve blog",
	opUpdate: "Failed to update blog",
	opDelete: "Failed to delete blog",
}

// writeServiceError maps a service error to the response. Unexpected errors
// are logged with the operation and the blog id (0 when there is none),
// the client only gets the generic failure message.
func writeServiceError(w http.ResponseWriter, err error, op operation, id int) {
	switch {
	case errors.Is(err, ErrBlogNotFound):
		pkg.WriteErrorResponse(w, http.StatusNotFound, msgBlogNotFound)
	case errors.Is(err, ErrInvalidBlog):
		pkg.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		entry := log.WithField("op", string(op))
		if id > 0 {
			entry = entry.WithField("id", id)
			entry.Errorf("%s blog %d: %s", op, id, err)
		} else {
			entry.Errorf("%s blog: %s", op, err)
		}
		pkg.WriteErrorResponse(w, http.StatusInternalServerError, failMessages[op])
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage describes the first failed field of err.
func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return msgInvalidBody
	}

	fe := validationErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be empty", fe.Field())
		}
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
