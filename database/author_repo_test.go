package database_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/database"
	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/rpupo63/blog-admin-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuthorRepo_CRUD(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := database.NewAuthorRepo(db)
	ctx := context.Background()

	author := &models.Author{FirstName: strPtr("Ada"), LastName: strPtr("Lovelace")}
	require.NoError(t, repo.Add(ctx, author))
	assert.NotEqual(t, uuid.Nil, author.ID)

	found, err := repo.FindByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", *found.LastName)

	updated, err := repo.Update(ctx, author.ID, map[string]interface{}{"last_name": "King"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", *updated.FirstName)
	assert.Equal(t, "King", *updated.LastName)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := repo.Delete(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, deleted.ID)

	_, err = repo.FindByID(ctx, author.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthorRepo_MissingRows(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := database.NewAuthorRepo(db)
	ctx := context.Background()

	_, err := repo.Update(ctx, uuid.New(), map[string]interface{}{"first_name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTagRepo_CRUD(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := database.NewTagRepo(db)
	posts := database.NewPostRepo(db)
	ctx := context.Background()

	tag := &models.Tag{Name: strPtr("go")}
	require.NoError(t, repo.Add(ctx, tag))

	updated, err := repo.Update(ctx, tag.ID, map[string]interface{}{"name": "golang"})
	require.NoError(t, err)
	assert.Equal(t, "golang", *updated.Name)

	author := testutil.SeedAuthor(t, db, "Ada")
	post, err := posts.Create(ctx, models.PostCreateInput{Title: "t", Author: &models.EntityRef{ID: author.ID}, Tags: []models.EntityRef{{ID: tag.ID}}})
	require.NoError(t, err)

	_, err = repo.Delete(ctx, tag.ID)
	require.NoError(t, err)

	remaining, err := posts.FindTags(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "deleting a tag must unlink it from posts")

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
