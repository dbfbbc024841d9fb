package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/errs"
	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore records what it was handed and returns err when set.
type fakeStore struct {
	created *models.PostCreateInput
	updated *models.PostUpdateInput
	deleted *models.PostWhereUnique
	args    *models.PostFindManyArgs
	post    *models.Post
	err     error
}

func (f *fakeStore) Create(ctx context.Context, in models.PostCreateInput) (*models.Post, error) {
	f.created = &in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: uuid.New(), Title: in.Title, Slug: in.Slug}, nil
}

func (f *fakeStore) Update(ctx context.Context, in models.PostUpdateInput) (*models.Post, error) {
	f.updated = &in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: in.Where.ID}, nil
}

func (f *fakeStore) Delete(ctx context.Context, where models.PostWhereUnique) (*models.Post, error) {
	f.deleted = &where
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: where.ID}, nil
}

func (f *fakeStore) FindMany(ctx context.Context, args models.PostFindManyArgs) ([]*models.Post, error) {
	f.args = &args
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Post{{ID: uuid.New()}}, nil
}

func (f *fakeStore) Count(ctx context.Context, args models.PostFindManyArgs) (int64, error) {
	f.args = &args
	if f.err != nil {
		return 0, f.err
	}
	return 42, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.post == nil || f.post.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.post, nil
}

func (f *fakeStore) FindTags(ctx context.Context, postID uuid.UUID) ([]models.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.post.Tags, nil
}

func (f *fakeStore) FindAuthor(ctx context.Context, postID uuid.UUID) (*models.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.post == nil || f.post.ID != postID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.post.Author, nil
}

func TestPostService_CreateNormalizesBeforeStore(t *testing.T) {
	store := &fakeStore{}
	svc := NewPostService(store, NewWriteNormalizer())

	post, err := svc.Create(context.Background(), models.PostCreateInput{Title: "My First Post", Slug: "ignored"})
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, "my-first-post", store.created.Slug)
	assert.Equal(t, "my-first-post", post.Slug)
}

func TestPostService_UpdateNormalizesBeforeStore(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := &fakeStore{}
	svc := NewPostService(store, NewWriteNormalizerWithClock(func() time.Time { return fixed }))
	id := uuid.New()

	_, err := svc.Update(context.Background(), models.PostUpdateInput{
		Where: models.PostWhereUnique{ID: id},
		Data:  models.PostUpdateData{Draft: boolPtr(false)},
	})
	require.NoError(t, err)

	require.NotNil(t, store.updated)
	assert.Equal(t, id, store.updated.Where.ID)
	assert.Equal(t, fixed, *store.updated.Data.CreatedAt)
	assert.Equal(t, fixed, *store.updated.Data.UpdatedAt)
}

func TestPostService_DelegatesReads(t *testing.T) {
	author := &models.Author{ID: uuid.New(), FirstName: strPtr("Ada")}
	post := &models.Post{ID: uuid.New(), Author: author, Tags: []models.Tag{{ID: uuid.New()}}}
	store := &fakeStore{post: post}
	svc := NewPostService(store, NewWriteNormalizer())
	ctx := context.Background()
	where := models.PostWhereUnique{ID: post.ID}

	found, err := svc.FindOne(ctx, where)
	require.NoError(t, err)
	assert.Same(t, post, found)

	tags, err := svc.FindTags(ctx, where)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	got, err := svc.GetAuthor(ctx, where)
	require.NoError(t, err)
	assert.Same(t, author, got)

	args := models.PostFindManyArgs{TitleContains: "go", Take: 5}
	posts, err := svc.FindMany(ctx, args)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, args, *store.args)

	count, err := svc.Count(ctx, args)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)

	deleted, err := svc.Delete(ctx, where)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)
	assert.Equal(t, where, *store.deleted)
}

func TestPostService_FindTagsOfMissingPost(t *testing.T) {
	svc := NewPostService(&fakeStore{}, NewWriteNormalizer())

	_, err := svc.FindTags(context.Background(), models.PostWhereUnique{ID: uuid.New()})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostService_PropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	where := models.PostWhereUnique{ID: uuid.New()}

	storeErrs := []error{
		gorm.ErrRecordNotFound,
		fmt.Errorf("%w: %s", errs.ErrAuthorNotFound, uuid.New()),
		errors.New("connection refused"),
	}

	for _, storeErr := range storeErrs {
		t.Run(storeErr.Error(), func(t *testing.T) {
			svc := NewPostService(&fakeStore{err: storeErr}, NewWriteNormalizer())

			_, err := svc.Create(ctx, models.PostCreateInput{Title: "t"})
			assert.Same(t, storeErr, err)

			_, err = svc.Update(ctx, models.PostUpdateInput{Where: where, Data: models.PostUpdateData{Draft: boolPtr(false)}})
			assert.Same(t, storeErr, err)

			_, err = svc.Delete(ctx, where)
			assert.Same(t, storeErr, err)

			_, err = svc.FindOne(ctx, where)
			assert.Same(t, storeErr, err)

			_, err = svc.FindMany(ctx, models.PostFindManyArgs{})
			assert.Same(t, storeErr, err)

			_, err = svc.Count(ctx, models.PostFindManyArgs{})
			assert.Same(t, storeErr, err)

			_, err = svc.FindTags(ctx, where)
			assert.Same(t, storeErr, err)

			_, err = svc.GetAuthor(ctx, where)
			assert.Same(t, storeErr, err)
		})
	}
}
