package database

import (
	"github.com/rpupo63/blog-admin-backend/errs"
	"github.com/rpupo63/blog-admin-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db         *gorm.DB
	postRepo   *PostRepo
	authorRepo *AuthorRepo
	tagRepo    *TagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:         db,
		postRepo:   NewPostRepo(db),
		authorRepo: NewAuthorRepo(db),
		tagRepo:    NewTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) AuthorRepo() *AuthorRepo {
	return d.authorRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// Ping checks that the primary connection is usable
func (d Database) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errs.NewDatabaseError("open", "connection", err)
	}
	return sqlDB.Ping()
}

// Migrate creates or updates the tables for every model, including the
// post_tags join table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Author{},
		&models.Tag{},
		&models.Post{},
	)
}
