package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2beens/blogsapi/internal/cache"
	"github.com/2beens/blogsapi/internal/telemetry/metrics"
	"github.com/2beens/blogsapi/internal/telemetry/tracing"
)

type blogRepo interface {
	AddBlog(ctx context.Context, blog *Blog) error
	All(ctx context.Context) ([]*Blog, error)
	GetBlog(ctx context.Context, id int) (*Blog, error)
	UpdateBlog(ctx context.Context, id int, update BlogUpdate) (*Blog, error)
	DeleteBlog(ctx context.Context, id int) error
}

var _ blogService = (*Service)(nil)

const cacheLockStripes = 64

// Service sits between the http handler and the repo. Single blogs are kept
// in the cache for cacheTTL; updates and deletes refresh or drop the entry.
//
// A repo call that ends in a cache write holds the lock stripe of its id until
// the cache is written, so a slow read can not put back a blog deleted or
// updated in the meantime.
type Service struct {
	repo     blogRepo
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *metrics.Manager

	idLocks [cacheLockStripes]sync.Mutex
}

// NewService creates the blog service. blogCache may be nil, in which case every read goes to the repo.
func NewService(
	repo blogRepo,
	blogCache cache.Cache,
	cacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:     repo,
		cache:    blogCache,
		cacheTTL: cacheTTL,
		metrics:  metricsManager,
	}
}

func blogCacheKey(id int) string {
	return fmt.Sprintf("blog::%d", id)
}

func (s *Service) lockID(id int) func() {
	stripe := id % cacheLockStripes
	if stripe < 0 {
		stripe = -stripe
	}
	mu := &s.idLocks[stripe]
	mu.Lock()
	return mu.Unlock
}

func (s *Service) AddBlog(ctx context.Context, blog *Blog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.add")
	defer func() { endSpan(span, err) }()

	if err := s.repo.AddBlog(ctx, blog); err != nil {
		return err
	}

	s.metrics.CounterBlogsCreated.Inc()
	s.cacheBlog(blog)
	return nil
}

func (s *Service) All(ctx context.Context) (_ []*Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.all")
	defer func() { endSpan(span, err) }()

	blogs, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*Blog{}
	}
	span.SetAttributes(attribute.Int("count", len(blogs)))
	return blogs, nil
}

func (s *Service) GetBlog(ctx context.Context, id int) (_ *Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.get")
	span.SetAttributes(attribute.Int("id", id))
	defer func() { endSpan(span, err) }()

	if b, found := s.cachedBlog(id); found {
		span.SetAttributes(attribute.Bool("cached", true))
		return b, nil
	}

	if s.cache == nil {
		return s.repo.GetBlog(ctx, id)
	}

	unlock := s.lockID(id)
	defer unlock()

	b, err := s.repo.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheBlog(b)
	return b, nil
}

func (s *Service) UpdateBlog(ctx context.Context, id int, update BlogUpdate) (_ *Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.update")
	span.SetAttributes(attribute.Int("id", id))
	defer func() { endSpan(span, err) }()

	unlock := s.lockID(id)
	defer unlock()

	b, err := s.repo.UpdateBlog(ctx, id, update)
	if err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			s.uncacheBlog(id)
		}
		return nil, err
	}

	s.metrics.CounterBlogsUpdated.Inc()
	s.cacheBlog(b)
	return b, nil
}

// DeleteBlog removes the blog. Deleting a missing blog is not an error.
func (s *Service) DeleteBlog(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.blog.delete")
	span.SetAttributes(attribute.Int("id", id))
	defer func() { endSpan(span, err) }()

	unlock := s.lockID(id)
	defer unlock()
	defer s.uncacheBlog(id)

	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			span.SetAttributes(attribute.Bool("existed", false))
			return nil
		}
		return err
	}

	s.metrics.CounterBlogsDeleted.Inc()
	return nil
}

func (s *Service) cachedBlog(id int) (*Blog, bool) {
	if s.cache == nil {
		return nil, false
	}

	key := blogCacheKey(id)
	blogBytes, found := s.cache.Get(key)
	if !found {
		s.metrics.CounterBlogCacheMisses.Inc()
		return nil, false
	}

	var b Blog
	if err := json.Unmarshal(blogBytes, &b); err != nil {
		log.Errorf("unmarshal cached blog %d: %s", id, err)
		s.cache.Del(key)
		s.metrics.CounterBlogCacheMisses.Inc()
		return nil, false
	}

	s.metrics.CounterBlogCacheHits.Inc()
	return &b, true
}

func (s *Service) cacheBlog(b *Blog) {
	if s.cache == nil || b == nil {
		return
	}

	blogBytes, err := json.Marshal(b)
	if err != nil {
		log.Errorf("marshal blog %d for cache: %s", b.ID, err)
		return
	}
	if err := s.cache.Set(blogCacheKey(b.ID), blogBytes, s.cacheTTL); err != nil {
		log.Warnf("cache blog %d: %s", b.ID, err)
	}
}

func (s *Service) uncacheBlog(id int) {
	if s.cache == nil {
		return
	}
	s.cache.Del(blogCacheKey(id))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
