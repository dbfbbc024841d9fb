package api

import (
	"time"

	"github.com/rpupo63/blog-admin-backend/database"
	"github.com/rpupo63/blog-admin-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, images ImageUploader, startupTime time.Time) *routeHandlers {
	posts := services.NewPostService(database.PostRepo(), services.NewWriteNormalizer())

	return &routeHandlers{
		postHandler:   newPostHandler(posts),
		authorHandler: newAuthorHandler(database.AuthorRepo()),
		tagHandler:    newTagHandler(database.TagRepo()),
		uploadHandler: newUploadHandler(images),
		healthHandler: newHealthHandler(database, startupTime),
	}
}
