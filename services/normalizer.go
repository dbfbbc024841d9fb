package services

import (
	"time"

	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/rpupo63/blog-admin-backend/slug"
)

// WriteNormalizer fills in the derived fields of a post before it is
// written: the slug on create and the timestamp pair on publish.
// It holds no mutable state and is safe for concurrent use.
type WriteNormalizer struct {
	now func() time.Time
}

func NewWriteNormalizer() WriteNormalizer {
	return WriteNormalizer{now: time.Now}
}

// NewWriteNormalizerWithClock is NewWriteNormalizer with a fixed time source.
func NewWriteNormalizerWithClock(now func() time.Time) WriteNormalizer {
	return WriteNormalizer{now: now}
}

// PrepareCreate sets Slug from Title, replacing any slug the caller sent.
func (n WriteNormalizer) PrepareCreate(in models.PostCreateInput) models.PostCreateInput {
	in.Slug = slug.Slugify(in.Title)
	return in
}

// PrepareUpdate stamps CreatedAt and UpdatedAt with the same instant when the
// update publishes the post (Draft explicitly false). Any other update is
// returned unchanged; the slug is never recomputed here.
func (n WriteNormalizer) PrepareUpdate(in models.PostUpdateInput) models.PostUpdateInput {
	if in.Data.Draft == nil || *in.Data.Draft {
		return in
	}

	now := n.clock()()
	createdAt, updatedAt := now, now
	in.Data.CreatedAt = &createdAt
	in.Data.UpdatedAt = &updatedAt
	return in
}

func (n WriteNormalizer) clock() func() time.Time {
	if n.now == nil {
		return time.Now
	}
	return n.now
}
