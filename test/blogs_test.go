//go:build integration_test || all_tests

package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/blogsapi/internal/blog"
	"github.com/2beens/blogsapi/pkg"
)

func (s *IntegrationTestSuite) do(method, path string, body any) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", pkg.ContentType.JSON)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) listBlogs() []blog.Blog {
	status, body := s.do(http.MethodGet, "/blogs", nil)
	s.Require().Equal(http.StatusOK, status)
	var blogs []blog.Blog
	s.Require().NoError(json.Unmarshal(body, &blogs))
	return blogs
}

func (s *IntegrationTestSuite) errorMessage(body []byte) string {
	var errResp pkg.ErrorResponse
	s.Require().NoError(json.Unmarshal(body, &errResp))
	return errResp.Message
}

func (s *IntegrationTestSuite) TestBlogs_createListDelete() {
	status, body := s.do(http.MethodGet, "/blogs", nil)
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`[]`, string(body))

	status, body = s.do(http.MethodPost, "/blogs", map[string]any{
		"title":  "T",
		"author": "A",
		"url":    "U",
		"likes":  7,
	})
	s.Require().Equal(http.StatusCreated, status)
	s.JSONEq(`{"id":1,"title":"T","author":"A","url":"U","likes":7}`, string(body))

	s.Equal([]blog.Blog{{ID: 1, Title: "T", Author: "A", URL: "U", Likes: 7}}, s.listBlogs())

	// fills the cache
	status, _ = s.do(http.MethodGet, "/blogs/1", nil)
	s.Require().Equal(http.StatusOK, status)

	status, body = s.do(http.MethodDelete, "/blogs/1", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Empty(body)

	status, body = s.do(http.MethodGet, "/blogs/1", nil)
	s.Require().Equal(http.StatusNotFound, status)
	s.Equal("Blog not found", s.errorMessage(body))

	status, body = s.do(http.MethodGet, "/blogs", nil)
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`[]`, string(body))

	// deleting a missing blog is still ok
	status, body = s.do(http.MethodDelete, "/blogs/1", nil)
	s.Equal(http.StatusOK, status)
	s.Empty(body)
}

func (s *IntegrationTestSuite) TestBlogs_getAndNotFound() {
	status, body := s.do(http.MethodGet, "/blogs/1", nil)
	s.Require().Equal(http.StatusNotFound, status)
	s.Equal("Blog not found", s.errorMessage(body))

	status, _ = s.do(http.MethodPost, "/blogs", map[string]any{
		"title":  "Type wars",
		"author": "Robert C. Martin",
		"url":    "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html",
	})
	s.Require().Equal(http.StatusCreated, status)

	status, body = s.do(http.MethodGet, "/blogs/1", nil)
	s.Require().Equal(http.StatusOK, status)
	var got blog.Blog
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Equal(blog.Blog{
		ID:     1,
		Title:  "Type wars",
		Author: "Robert C. Martin",
		URL:    "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html",
		Likes:  0,
	}, got)

	status, body = s.do(http.MethodGet, "/blogs/abc", nil)
	s.Require().Equal(http.StatusBadRequest, status)
	s.Equal("Invalid blog id", s.errorMessage(body))
}

func (s *IntegrationTestSuite) TestBlogs_createInvalid() {
	status, body := s.do(http.MethodPost, "/blogs", map[string]any{
		"author": "A",
		"url":    "U",
	})
	s.Require().Equal(http.StatusBadRequest, status)
	s.Equal("title is required", s.errorMessage(body))

	status, body = s.do(http.MethodPost, "/blogs", map[string]any{
		"title":  "T",
		"author": "A",
		"url":    "U",
		"likes":  -1,
	})
	s.Require().Equal(http.StatusBadRequest, status)
	s.Equal("likes must be >= 0", s.errorMessage(body))

	s.Empty(s.listBlogs())
}

func (s *IntegrationTestSuite) TestBlogs_partialUpdate() {
	for i, likes := range []int{5, 12} {
		status, _ := s.do(http.MethodPost, "/blogs", map[string]any{
			"title":  "Title " + strconv.Itoa(i),
			"author": "Edsger W. Dijkstra",
			"url":    "http://www.cs.utexas.edu/~EWD/",
			"likes":  likes,
		})
		s.Require().Equal(http.StatusCreated, status)
	}

	// cached before the update
	status, body := s.do(http.MethodGet, "/blogs/2", nil)
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`{"id":2,"title":"Title 1","author":"Edsger W. Dijkstra","url":"http://www.cs.utexas.edu/~EWD/","likes":12}`, string(body))

	status, body = s.do(http.MethodPut, "/blogs/2", map[string]any{"likes": 13})
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`{"id":2,"title":"Title 1","author":"Edsger W. Dijkstra","url":"http://www.cs.utexas.edu/~EWD/","likes":13}`, string(body))

	status, body = s.do(http.MethodGet, "/blogs/2", nil)
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`{"id":2,"title":"Title 1","author":"Edsger W. Dijkstra","url":"http://www.cs.utexas.edu/~EWD/","likes":13}`, string(body))

	status, body = s.do(http.MethodPut, "/blogs/2", map[string]any{})
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`{"id":2,"title":"Title 1","author":"Edsger W. Dijkstra","url":"http://www.cs.utexas.edu/~EWD/","likes":13}`, string(body))

	status, body = s.do(http.MethodPut, "/blogs/99", map[string]any{"likes": 1})
	s.Require().Equal(http.StatusNotFound, status)
	s.Equal("Blog not found", s.errorMessage(body))

	blogs := s.listBlogs()
	s.Require().Len(blogs, 2)
	s.Equal(1, blogs[0].ID)
	s.Equal(5, blogs[0].Likes)
	s.Equal(2, blogs[1].ID)
	s.Equal(13, blogs[1].Likes)
}

func (s *IntegrationTestSuite) TestMisc() {
	status, body := s.do(http.MethodGet, "/health_check", nil)
	s.Equal(http.StatusOK, status)
	s.Empty(body)

	status, body = s.do(http.MethodGet, "/version", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("test-version-info", string(body))

	status, body = s.do(http.MethodGet, "/no/such/route", nil)
	s.Equal(http.StatusNotFound, status)
	s.Equal("not found", s.errorMessage(body))
}
