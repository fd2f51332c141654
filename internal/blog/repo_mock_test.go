package blog

import (
	"context"
	"sort"
	"sync"
)

var _ blogRepo = (*repoMock)(nil)

// repoMock keeps blogs in memory and counts the calls, so tests can tell cache hits from repo reads.
type repoMock struct {
	mutex  sync.Mutex
	blogs  map[int]*Blog
	nextID int
	calls  map[string]int
	err    error
}

func newRepoMock() *repoMock {
	return &repoMock{
		blogs:  make(map[int]*Blog),
		nextID: 1,
		calls:  make(map[string]int),
	}
}

func (r *repoMock) callCount(method string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.calls[method]
}

func (r *repoMock) AddBlog(_ context.Context, blog *Blog) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls["AddBlog"]++
	if r.err != nil {
		return r.err
	}
	blog.ID = r.nextID
	r.nextID++
	stored := *blog
	r.blogs[blog.ID] = &stored
	return nil
}

func (r *repoMock) All(_ context.Context) ([]*Blog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls["All"]++
	if r.err != nil {
		return nil, r.err
	}
	var blogs []*Blog
	for _, b := range r.blogs {
		c := *b
		blogs = append(blogs, &c)
	}
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].ID < blogs[j].ID })
	return blogs, nil
}

func (r *repoMock) GetBlog(_ context.Context, id int) (*Blog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls["GetBlog"]++
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.blogs[id]
	if !ok {
		return nil, ErrBlogNotFound
	}
	c := *b
	return &c, nil
}

func (r *repoMock) UpdateBlog(_ context.Context, id int, update BlogUpdate) (*Blog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls["UpdateBlog"]++
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.blogs[id]
	if !ok {
		return nil, ErrBlogNotFound
	}
	if update.Title != nil {
		b.Title = *update.Title
	}
	if update.Author != nil {
		b.Author = *update.Author
	}
	if update.URL != nil {
		b.URL = *update.URL
	}
	if update.Likes != nil {
		b.Likes = *update.Likes
	}
	c := *b
	return &c, nil
}

func (r *repoMock) DeleteBlog(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls["DeleteBlog"]++
	if r.err != nil {
		return r.err
	}
	if _, ok := r.blogs[id]; !ok {
		return ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}
