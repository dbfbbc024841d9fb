package models

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/slug"
)

// EntityRef points at an existing row by id, e.g. {"id": "..."} for an author or tag.
type EntityRef struct {
	ID uuid.UUID `json:"id"`
}

func (r EntityRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(notNilUUID)),
	)
}

// PostWhereUnique selects a single post
type PostWhereUnique struct {
	ID uuid.UUID `json:"id"`
}

// PostCreateInput is the payload for creating a post. Slug is always
// derived from Title before the row is written.
type PostCreateInput struct {
	Title           string      `json:"title"`
	Slug            string      `json:"slug,omitempty"`
	Draft           *bool       `json:"draft,omitempty"`
	Content         *string     `json:"content,omitempty"`
	MetaTitle       *string     `json:"metaTitle,omitempty"`
	MetaDescription *string     `json:"metaDescription,omitempty"`
	FeaturedImage   *string     `json:"featuredImage,omitempty"`
	Author          *EntityRef  `json:"author"`
	Tags            []EntityRef `json:"tags,omitempty"`
}

func (in PostCreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Author, validation.Required.Error("author is required")),
		validation.Field(&in.FeaturedImage, validation.NilOrNotEmpty, is.URL.Error("featuredImage must be a valid URL")),
		validation.Field(&in.Tags),
	)
}

// PostUpdateData holds the fields to change. Nil fields are left untouched.
// A non-nil empty Tags slice removes every tag from the post.
type PostUpdateData struct {
	Title           *string     `json:"title,omitempty"`
	Slug            *string     `json:"slug,omitempty"`
	Draft           *bool       `json:"draft,omitempty"`
	Content         *string     `json:"content,omitempty"`
	MetaTitle       *string     `json:"metaTitle,omitempty"`
	MetaDescription *string     `json:"metaDescription,omitempty"`
	FeaturedImage   *string     `json:"featuredImage,omitempty"`
	Author          *EntityRef  `json:"author,omitempty"`
	Tags            []EntityRef `json:"tags,omitempty"`
	CreatedAt       *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time  `json:"updatedAt,omitempty"`
}

func (d PostUpdateData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Slug, validation.By(canonicalSlug)),
		validation.Field(&d.FeaturedImage, validation.NilOrNotEmpty, is.URL.Error("featuredImage must be a valid URL")),
		validation.Field(&d.Author),
		validation.Field(&d.Tags),
	)
}

func canonicalSlug(value interface{}) error {
	s, _ := value.(*string)
	if s != nil && !slug.IsValid(*s) {
		return errors.New("must be lowercase letters and digits joined by single hyphens")
	}
	return nil
}

// PostUpdateInput targets one post and carries the changes to apply to it.
type PostUpdateInput struct {
	Where PostWhereUnique `json:"where"`
	Data  PostUpdateData  `json:"data"`
}

// PostFindManyArgs filters and pages a post listing. Zero values mean "no filter".
type PostFindManyArgs struct {
	TitleContains string    `json:"title"`
	Draft         *bool     `json:"draft"`
	AuthorID      uuid.UUID `json:"authorId"`
	TagID         uuid.UUID `json:"tagId"`
	Skip          int       `json:"skip"`
	Take          int       `json:"take"`
	OrderBy       string    `json:"orderBy"`
	Descending    bool      `json:"-"`
}

// PostOrderFields are the values OrderBy accepts. Empty means createdAt.
var PostOrderFields = []interface{}{"createdAt", "updatedAt", "title", "slug", "draft"}

// MaxPostPageSize caps Take on a single listing.
const MaxPostPageSize = 100

func (a PostFindManyArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Skip, validation.Min(0)),
		validation.Field(&a.Take, validation.Min(0), validation.Max(MaxPostPageSize)),
		validation.Field(&a.OrderBy, validation.In(PostOrderFields...)),
	)
}

func notNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_uuid_nil", "must be a non-nil id")
	}
	return nil
}
