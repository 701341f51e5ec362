package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a piece of published content.
//
// AuthorID is set once at creation and never reassigned. IsActive controls
// visibility in public listings and is only flipped by admins. The composite
// FULLTEXT index backs the title/description search.
type Post struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null;index:idx_posts_search,class:FULLTEXT"`
	Description string    `json:"description" gorm:"type:text;not null;index:idx_posts_search,class:FULLTEXT"`
	Image       *string   `json:"image" gorm:"size:255"`
	AuthorID    uuid.UUID `json:"author_id" gorm:"type:char(36);not null;index"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets the UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostPatch carries the mutable fields of an update request; nil fields are
// left untouched. AuthorID and IsActive are deliberately absent.
type PostPatch struct {
	Title       *string
	Description *string
	Image       *string
}

// Apply copies the provided fields onto the post.
func (patch PostPatch) Apply(p *Post) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = patch.Image
	}
}
