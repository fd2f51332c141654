package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/blogsapi/internal/telemetry/tracing"
	"github.com/2beens/blogsapi/pkg"
)

// manual caching of prepared statements not needed:
// https://github.com/jackc/pgx/wiki/Automatic-Prepared-Statement-Caching

var _ blogRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddBlog(ctx context.Context, blog *Blog) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.AddBlog")
	defer span.End()

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO blogs (title, author, url, likes) VALUES ($1, $2, $3, $4) RETURNING id;`,
		blog.Title, blog.Author, blog.URL, blog.Likes,
	).Scan(&blog.ID)
	if err != nil {
		return constraintError(err)
	}

	return nil
}

func (r *Repo) All(ctx context.Context) ([]*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.All")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, author, url, likes FROM blogs ORDER BY id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2blogs(rows)
}

func (r *Repo) GetBlog(ctx context.Context, id int) (*Blog, error) {
	log.Tracef("getting blog %d", id)

	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.GetBlog")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	var blog Blog
	err := r.db.QueryRow(
		ctx,
		`SELECT id, title, author, url, likes FROM blogs WHERE id = $1;`,
		id,
	).Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	return &blog, nil
}

// UpdateBlog sets only the non-nil fields of the update, in a single statement.
func (r *Repo) UpdateBlog(ctx context.Context, id int, update BlogUpdate) (*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.UpdateBlog")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	var blog Blog
	err := r.db.QueryRow(
		ctx,
		`
			UPDATE blogs SET
				title = COALESCE($1, title),
				author = COALESCE($2, author),
				url = COALESCE($3, url),
				likes = COALESCE($4, likes)
			WHERE id = $5
			RETURNING id, title, author, url, likes;
		`,
		update.Title, update.Author, update.URL, update.Likes, id,
	).Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, constraintError(err)
	}

	return &blog, nil
}

func (r *Repo) DeleteBlog(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.DeleteBlog")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *Repo) rows2blogs(rows pgx.Rows) ([]*Blog, error) {
	blogs := make([]*Blog, 0)
	for rows.Next() {
		var b Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes); err != nil {
			return nil, err
		}
		blogs = append(blogs, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blogs, nil
}

// constraintError turns constraint violations into ErrInvalidBlog, other errors are returned as is.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pkg.IsCheckViolationError(err):
		return fmt.Errorf("%w: constraint %s violated", ErrInvalidBlog, pgErr.ConstraintName)
	case pkg.IsNotNullViolationError(err):
		return fmt.Errorf("%w: %s must not be null", ErrInvalidBlog, pgErr.ColumnName)
	default:
		return err
	}
}
