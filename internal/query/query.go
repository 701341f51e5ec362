// Package query implements the list-query contract shared by every
// collection endpoint: page/limit pagination, newest-first ordering and
// optional text search, expressed as GORM scopes.
package query

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultLimit is applied when a request omits or mangles the limit.
	DefaultLimit = 10
	// AllRecordsLimit marks the dashboard aggregation mode: a public post
	// listing requested with at least this limit also includes inactive posts.
	AllRecordsLimit = 1000
)

// Params are the normalized pagination and search inputs of a list request.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Normalize clamps page and limit to their minimums and applies defaults,
// returning a copy. Search is whitespace-trimmed.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata block returned alongside every listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count for total matching rows. A total of
// zero yields zero pages.
func NewPagination(p Params, total int64) Pagination {
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}

// Paginate applies the offset/limit window.
func Paginate(p Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// OrderNewest sorts by creation time descending. Every listing uses this
// ordering so pagination stays stable across endpoints.
func OrderNewest(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// ActiveOnly restricts the listing to active records.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByAuthor restricts posts to a single author.
func ByAuthor(authorID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	}
}

// SearchUsers matches the term as a case-insensitive substring of name or
// email.
func SearchUsers(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + escapeLike(term) + "%"
		return db.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
}

// SearchPosts matches the term against the FULLTEXT index over title and
// description.
func SearchPosts(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		return db.Where("MATCH(title, description) AGAINST(? IN NATURAL LANGUAGE MODE)", term)
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
