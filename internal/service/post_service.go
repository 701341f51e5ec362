package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkpost/internal/auth"
	"inkpost/internal/cache"
	apperrors "inkpost/internal/errors"
	"inkpost/internal/model"
	"inkpost/internal/query"
	"inkpost/internal/repository"
)

const (
	postCacheTTL  = 5 * time.Minute
	statsCacheTTL = time.Minute
)

// PostStats are an author's post counts for the dashboard.
type PostStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	DraftPosts     int64 `json:"draft_posts"`
}

// PostService owns post mutations and the listing variants.
type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, title, description string, image *string) (*model.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, id uuid.UUID, requester *model.User, patch model.PostPatch) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID, requester *model.User) error
	AdminToggleActive(ctx context.Context, id uuid.UUID) (*model.Post, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, p query.Params) ([]model.Post, query.Pagination, error)
	ListAll(ctx context.Context, p query.Params) ([]model.Post, query.Pagination, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, p query.Params) ([]model.Post, query.Pagination, error)
	Stats(ctx context.Context, authorID uuid.UUID) (*PostStats, error)
}

type postService struct {
	posts repository.PostRepository
	gate  *auth.Gate
	cache *cache.Client
}

// NewPostService creates a post service.
func NewPostService(posts repository.PostRepository, gate *auth.Gate, cache *cache.Client) PostService {
	return &postService{posts: posts, gate: gate, cache: cache}
}

func postCacheKey(id uuid.UUID) string {
	return "post:" + id.String()
}

func statsCacheKey(authorID uuid.UUID) string {
	return "stats:" + authorID.String()
}

// Create persists a post with the author fixed to the creator.
func (s *postService) Create(ctx context.Context, authorID uuid.UUID, title, description string, image *string) (*model.Post, error) {
	post := &model.Post{
		Title:       title,
		Description: description,
		Image:       image,
		AuthorID:    authorID,
		IsActive:    true,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey(authorID))
	return s.reload(ctx, post.ID)
}

// Get returns a post by id through a read-through cache.
func (s *postService) Get(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var cached model.Post
	if s.cache.GetJSON(ctx, postCacheKey(id), &cached) {
		return &cached, nil
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	s.cache.SetJSON(ctx, postCacheKey(id), post, postCacheTTL)
	return post, nil
}

// Update applies the patch after the ownership check. AuthorID and IsActive
// are never touched here; concurrent updates resolve last-write-wins.
func (s *postService) Update(ctx context.Context, id uuid.UUID, requester *model.User, patch model.PostPatch) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.gate.AuthorizeOwnership(requester, post.AuthorID); err != nil {
		return nil, err
	}

	patch.Apply(post)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.invalidate(ctx, post)
	return s.reload(ctx, post.ID)
}

// Delete removes a post permanently after the ownership check.
func (s *postService) Delete(ctx context.Context, id uuid.UUID, requester *model.User) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	if err := s.gate.AuthorizeOwnership(requester, post.AuthorID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.invalidate(ctx, post)
	return nil
}

// AdminToggleActive flips the post's visibility. The admin role check runs
// in the middleware pipeline before this is reached.
func (s *postService) AdminToggleActive(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	post.IsActive = !post.IsActive
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("toggle post: %w", err)
	}
	s.invalidate(ctx, post)
	return post, nil
}

// AdminDelete removes any post regardless of ownership.
func (s *postService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.invalidate(ctx, post)
	return nil
}

// List is the public listing: active posts only, unless the caller asks for
// the high-limit aggregation window, which spans every post.
func (s *postService) List(ctx context.Context, p query.Params) ([]model.Post, query.Pagination, error) {
	p = p.Normalize()
	filter := repository.PostFilter{ActiveOnly: p.Limit < query.AllRecordsLimit}
	return s.list(ctx, p, filter)
}

// ListAll is the admin listing: every post, inactive included.
func (s *postService) ListAll(ctx context.Context, p query.Params) ([]model.Post, query.Pagination, error) {
	return s.list(ctx, p.Normalize(), repository.PostFilter{})
}

// ListByAuthor lists one author's posts, inactive included.
func (s *postService) ListByAuthor(ctx context.Context, authorID uuid.UUID, p query.Params) ([]model.Post, query.Pagination, error) {
	return s.list(ctx, p.Normalize(), repository.PostFilter{AuthorID: &authorID})
}

func (s *postService) list(ctx context.Context, p query.Params, f repository.PostFilter) ([]model.Post, query.Pagination, error) {
	posts, total, err := s.posts.List(ctx, p, f)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, query.NewPagination(p, total), nil
}

// Stats returns the author's total, published and draft counts.
func (s *postService) Stats(ctx context.Context, authorID uuid.UUID) (*PostStats, error) {
	var cached PostStats
	if s.cache.GetJSON(ctx, statsCacheKey(authorID), &cached) {
		return &cached, nil
	}

	total, err := s.posts.CountByAuthor(ctx, authorID, nil)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	active := true
	published, err := s.posts.CountByAuthor(ctx, authorID, &active)
	if err != nil {
		return nil, fmt.Errorf("count published: %w", err)
	}

	stats := &PostStats{
		TotalPosts:     total,
		PublishedPosts: published,
		DraftPosts:     total - published,
	}
	s.cache.SetJSON(ctx, statsCacheKey(authorID), stats, statsCacheTTL)
	return stats, nil
}

func (s *postService) invalidate(ctx context.Context, post *model.Post) {
	_ = s.cache.Delete(ctx, postCacheKey(post.ID), statsCacheKey(post.AuthorID))
}

func (s *postService) reload(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return post, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrPostNotFound
	}
	return err
}
