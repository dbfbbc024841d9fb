package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// postService is the part of services.PostService the handler uses.
type postService interface {
	Create(ctx context.Context, in models.PostCreateInput) (*models.Post, error)
	Update(ctx context.Context, in models.PostUpdateInput) (*models.Post, error)
	Delete(ctx context.Context, where models.PostWhereUnique) (*models.Post, error)
	FindMany(ctx context.Context, args models.PostFindManyArgs) ([]*models.Post, error)
	Count(ctx context.Context, args models.PostFindManyArgs) (int64, error)
	FindOne(ctx context.Context, where models.PostWhereUnique) (*models.Post, error)
	FindTags(ctx context.Context, where models.PostWhereUnique) ([]models.Tag, error)
	GetAuthor(ctx context.Context, where models.PostWhereUnique) (*models.Author, error)
}

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     postService
}

func newPostHandler(posts postService) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// getPosts lists posts
// @Summary List posts
// @Description Lists posts matching the filters. The total match count is returned in X-Total-Count.
// @Tags Posts
// @Produce json
// @Param title query string false "Case-insensitive title substring"
// @Param draft query bool false "Draft state"
// @Param authorId query string false "Author ID" format(uuid)
// @Param tagId query string false "Tag ID" format(uuid)
// @Param skip query int false "Rows to skip"
// @Param take query int false "Rows to return (max 100)"
// @Param orderBy query string false "createdAt, updatedAt, title, slug or draft"
// @Param order query string false "asc or desc"
// @Success 200 {array} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts [get]
func (h postHandler) getPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, err := parsePostListQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var (
			posts []*models.Post
			total int64
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			posts, err = h.posts.FindMany(ctx, args)
			return err
		})
		g.Go(func() error {
			var err error
			total, err = h.posts.Count(ctx, args)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "posts", err))
			return
		}

		if posts == nil {
			posts = []*models.Post{}
		}
		w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
		h.responder.WriteJSON(w, posts)
	}
}

// getPostsMeta counts posts
// @Summary Count posts
// @Tags Posts
// @Produce json
// @Success 200 {object} CountResponse
// @Router /posts/_meta [get]
func (h postHandler) getPostsMeta() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, err := parsePostListQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		count, err := h.posts.Count(r.Context(), args)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
			return
		}
		h.responder.WriteJSON(w, CountResponse{Count: count})
	}
}

// getPost retrieves a post with its author and tags
// @Summary Get post
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 404 {object} ErrorResponse "Not Found - No resource was found"
// @Router /posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		where, err := postWhere(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.FindOne(r.Context(), where)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("find", "post", where, err))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// getPostTags lists the tags of a post
// @Summary Get post tags
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {array} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /posts/{postID}/tags [get]
func (h postHandler) getPostTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		where, err := postWhere(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tags, err := h.posts.FindTags(r.Context(), where)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("find tags of", "post", where, err))
			return
		}
		if tags == nil {
			tags = []models.Tag{}
		}
		h.responder.WriteJSON(w, tags)
	}
}

// getPostAuthor returns the author of a post
// @Summary Get post author
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.Author
// @Failure 404 {object} ErrorResponse
// @Router /posts/{postID}/author [get]
func (h postHandler) getPostAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		where, err := postWhere(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author, err := h.posts.GetAuthor(r.Context(), where)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("find author of", "post", where, err))
			return
		}
		h.responder.WriteJSON(w, author)
	}
}

// createPost creates a post. The slug is always derived from the title.
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body models.PostCreateInput true "Post data"
// @Success 201 {object} models.Post
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data or unknown author/tag"
// @Failure 500 {object} ErrorResponse
// @Router /posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.PostCreateInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("create", "post", nil, err))
			return
		}

		h.logger.Info().Str("postID", post.ID.String()).Str("slug", post.Slug).Str("userID", ctxGetUserID(r.Context())).Strs("roles", ctxGetRoles(r.Context())).Msg("post created")
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, post)
	}
}

// updatePost applies a partial update. Publishing a draft (draft=false)
// resets both timestamps to the time of the update.
// @Summary Update post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Param post body models.PostUpdateData true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Not Found - No resource was found"
// @Router /posts/{postID} [patch]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		where, err := postWhere(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var data models.PostUpdateData
		if err := decodeJSON(w, r, &data); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Update(r.Context(), models.PostUpdateInput{Where: where, Data: data})
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("update", "post", where, err))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// deletePost deletes a post and returns it
// @Summary Delete post
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.Post "The deleted post"
// @Failure 404 {object} ErrorResponse "Not Found - No resource was found"
// @Router /posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		where, err := postWhere(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.posts.Delete(r.Context(), where)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("delete", "post", where, err))
			return
		}

		h.logger.Info().Str("postID", post.ID.String()).Str("userID", ctxGetUserID(r.Context())).Msg("post deleted")
		h.responder.WriteJSON(w, post)
	}
}

func postWhere(r *http.Request) (models.PostWhereUnique, error) {
	id, err := uuidParam(r, "postID")
	if err != nil {
		return models.PostWhereUnique{}, err
	}
	return models.PostWhereUnique{ID: id}, nil
}

// entityWhere is the not-found payload for authors and tags
type entityWhere struct {
	ID uuid.UUID `json:"id"`
}
