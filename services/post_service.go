package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/models"
)

// PostStore is the persistence behind PostService. *database.PostRepo
// satisfies it.
type PostStore interface {
	Create(ctx context.Context, in models.PostCreateInput) (*models.Post, error)
	Update(ctx context.Context, in models.PostUpdateInput) (*models.Post, error)
	Delete(ctx context.Context, where models.PostWhereUnique) (*models.Post, error)
	FindMany(ctx context.Context, args models.PostFindManyArgs) ([]*models.Post, error)
	Count(ctx context.Context, args models.PostFindManyArgs) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindTags(ctx context.Context, postID uuid.UUID) ([]models.Tag, error)
	FindAuthor(ctx context.Context, postID uuid.UUID) (*models.Author, error)
}

// PostService normalizes writes and hands every operation to the store.
// Store errors are returned as-is.
type PostService struct {
	store      PostStore
	normalizer WriteNormalizer
}

func NewPostService(store PostStore, normalizer WriteNormalizer) PostService {
	return PostService{store: store, normalizer: normalizer}
}

func (s PostService) Create(ctx context.Context, in models.PostCreateInput) (*models.Post, error) {
	return s.store.Create(ctx, s.normalizer.PrepareCreate(in))
}

func (s PostService) Update(ctx context.Context, in models.PostUpdateInput) (*models.Post, error) {
	return s.store.Update(ctx, s.normalizer.PrepareUpdate(in))
}

func (s PostService) Delete(ctx context.Context, where models.PostWhereUnique) (*models.Post, error) {
	return s.store.Delete(ctx, where)
}

func (s PostService) FindMany(ctx context.Context, args models.PostFindManyArgs) ([]*models.Post, error) {
	return s.store.FindMany(ctx, args)
}

func (s PostService) Count(ctx context.Context, args models.PostFindManyArgs) (int64, error) {
	return s.store.Count(ctx, args)
}

func (s PostService) FindOne(ctx context.Context, where models.PostWhereUnique) (*models.Post, error) {
	return s.store.FindByID(ctx, where.ID)
}

// FindTags returns the post's tags, or the store's not-found error when the
// post does not exist.
func (s PostService) FindTags(ctx context.Context, where models.PostWhereUnique) ([]models.Tag, error) {
	if _, err := s.store.FindByID(ctx, where.ID); err != nil {
		return nil, err
	}
	return s.store.FindTags(ctx, where.ID)
}

// GetAuthor returns the author of the post.
func (s PostService) GetAuthor(ctx context.Context, where models.PostWhereUnique) (*models.Author, error) {
	return s.store.FindAuthor(ctx, where.ID)
}
