package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db}
}

// FindAll returns all authors from the database
func (r *AuthorRepo) FindAll(ctx context.Context) ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.WithContext(ctx).Order("created_at").Find(&authors).Error
	return authors, err
}

// FindByID returns an author by its ID
func (r *AuthorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// Add inserts a new author into the database
func (r *AuthorRepo) Add(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(author).Error
}

// Update sets the given columns on an existing author
func (r *AuthorRepo) Update(ctx context.Context, id uuid.UUID, values map[string]interface{}) (*models.Author, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.Author
		if err := tx.Select("id").First(&author, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&author).Updates(values).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes an author by id and returns the deleted row
func (r *AuthorRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&author, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&author).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}
