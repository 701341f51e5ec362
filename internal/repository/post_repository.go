package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkpost/internal/model"
	"inkpost/internal/query"
)

// PostFilter narrows a post listing. The zero value matches every post.
type PostFilter struct {
	ActiveOnly bool
	AuthorID   *uuid.UUID
}

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, p query.Params, f PostFilter) ([]model.Post, int64, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID, isActive *bool) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").
		Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts matching the filter and search term, newest
// first, plus the total match count ignoring pagination.
func (r *postRepository) List(ctx context.Context, p query.Params, f PostFilter) ([]model.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(query.SearchPosts(p.Search))
	if f.ActiveOnly {
		base = base.Scopes(query.ActiveOnly)
	}
	if f.AuthorID != nil {
		base = base.Scopes(query.ByAuthor(*f.AuthorID))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	if err := base.Session(&gorm.Session{}).
		Preload("Author").
		Scopes(query.OrderNewest, query.Paginate(p)).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// CountByAuthor counts an author's posts, optionally restricted by active
// state.
func (r *postRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID, isActive *bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID)
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
