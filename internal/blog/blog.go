package blog

import (
	"errors"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrInvalidBlog  = errors.New("invalid blog")
)

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// BlogUpdate holds the fields of a partial update, nil fields are left unchanged.
type BlogUpdate struct {
	Title  *string `json:"title" validate:"omitempty,min=1"`
	Author *string `json:"author" validate:"omitempty,min=1"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes" validate:"omitempty,min=0,max=2147483647"`
}
