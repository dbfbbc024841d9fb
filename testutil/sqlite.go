// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rpupo63/blog-admin-backend/database"
	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory database private to t.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, _ := OpenSQLite(t, t.Name())
	return db
}

// OpenSQLite opens a migrated in-memory database under name with foreign keys
// enforced. The returned DSN reaches the same database while t runs.
func OpenSQLite(t *testing.T, name string) (*gorm.DB, string) {
	t.Helper()

	name = strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(name)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db, dsn
}

func strPtr(s string) *string { return &s }

// SeedAuthor inserts an author with the given first name.
func SeedAuthor(t *testing.T, db *gorm.DB, firstName string) models.Author {
	t.Helper()
	author := models.Author{FirstName: strPtr(firstName), LastName: strPtr("Writer")}
	require.NoError(t, db.Create(&author).Error)
	return author
}

// SeedTag inserts a tag with the given name.
func SeedTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: strPtr(name)}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}
