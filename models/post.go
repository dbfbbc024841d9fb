package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog article. Slug is derived from Title when the post is created.
type Post struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
	Title           string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug            string    `json:"slug" db:"slug" gorm:"type:text;not null;index:idx_post_slug"`
	Draft           bool      `json:"draft" db:"draft" gorm:"not null;default:false"`
	Content         *string   `json:"content" db:"content" gorm:"type:text"`
	MetaTitle       *string   `json:"metaTitle" db:"meta_title" gorm:"type:text"`
	MetaDescription *string   `json:"metaDescription" db:"meta_description" gorm:"type:text"`
	FeaturedImage   *string   `json:"featuredImage" db:"featured_image" gorm:"type:text"`
	AuthorID        uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_post_author_id"`

	Author *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Tags   []Tag   `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
