package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public health check and the admin routes. The
// admin routes require a bearer token unless auth is nil. logRequests wraps
// the admin routes outside auth so rejected requests are logged too.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth *authMiddleware, logRequests func(http.Handler) http.Handler) {
	r.Get("/health", handlers.healthHandler.health())

	r.Group(func(r chi.Router) {
		r.Use(logRequests)
		if auth != nil {
			r.Use(auth.authenticate)
		}

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", handlers.postHandler.getPosts())
			r.Post("/", handlers.postHandler.createPost())
			r.Get("/_meta", handlers.postHandler.getPostsMeta())
			r.Route("/{postID}", func(r chi.Router) {
				r.Get("/", handlers.postHandler.getPost())
				r.Patch("/", handlers.postHandler.updatePost())
				r.Delete("/", handlers.postHandler.deletePost())
				r.Get("/tags", handlers.postHandler.getPostTags())
				r.Get("/author", handlers.postHandler.getPostAuthor())
			})
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", handlers.authorHandler.getAllAuthors())
			r.Post("/", handlers.authorHandler.createAuthor())
			r.Get("/{authorID}", handlers.authorHandler.getAuthor())
			r.Patch("/{authorID}", handlers.authorHandler.updateAuthor())
			r.Delete("/{authorID}", handlers.authorHandler.deleteAuthor())
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", handlers.tagHandler.getAllTags())
			r.Post("/", handlers.tagHandler.createTag())
			r.Get("/{tagID}", handlers.tagHandler.getTag())
			r.Patch("/{tagID}", handlers.tagHandler.updateTag())
			r.Delete("/{tagID}", handlers.tagHandler.deleteTag())
		})

		r.Post("/uploads/featured-image", handlers.uploadHandler.uploadFeaturedImage())
	})
}
