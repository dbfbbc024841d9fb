package api

import (
	"net/http"

	"github.com/rpupo63/blog-admin-backend/database"
	"github.com/rpupo63/blog-admin-backend/errs"
	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authorHandler struct {
	responder  Responder
	logger     zerolog.Logger
	authorRepo *database.AuthorRepo
}

func newAuthorHandler(authorRepo *database.AuthorRepo) authorHandler {
	logger := log.With().Str("handlerName", "authorHandler").Logger()

	return authorHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		authorRepo: authorRepo,
	}
}

// getAllAuthors lists every author
// @Summary List authors
// @Tags Authors
// @Produce json
// @Success 200 {array} models.Author
// @Router /authors [get]
func (h authorHandler) getAllAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authors, err := h.authorRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "authors", err))
			return
		}
		if authors == nil {
			authors = []*models.Author{}
		}
		h.responder.WriteJSON(w, authors)
	}
}

// @Summary Get author
// @Tags Authors
// @Param authorID path string true "Author ID" format(uuid)
// @Success 200 {object} models.Author
// @Failure 404 {object} ErrorResponse
// @Router /authors/{authorID} [get]
func (h authorHandler) getAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "authorID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author, err := h.authorRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("find", "author", entityWhere{id}, err))
			return
		}
		h.responder.WriteJSON(w, author)
	}
}

// @Summary Create author
// @Tags Authors
// @Accept json
// @Param author body models.AuthorInput true "Author data"
// @Success 201 {object} models.Author
// @Failure 400 {object} ErrorResponse
// @Router /authors [post]
func (h authorHandler) createAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.AuthorInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author := input.Author()
		if err := h.authorRepo.Add(r.Context(), author); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "author", err))
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, author)
	}
}

// @Summary Update author
// @Tags Authors
// @Accept json
// @Param authorID path string true "Author ID" format(uuid)
// @Param author body models.AuthorInput true "Fields to change"
// @Success 200 {object} models.Author
// @Failure 404 {object} ErrorResponse
// @Router /authors/{authorID} [patch]
func (h authorHandler) updateAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "authorID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.AuthorInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		values := input.Values()
		if len(values) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no fields to update"))
			return
		}

		author, err := h.authorRepo.Update(r.Context(), id, values)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("update", "author", entityWhere{id}, err))
			return
		}
		h.responder.WriteJSON(w, author)
	}
}

// @Summary Delete author
// @Tags Authors
// @Param authorID path string true "Author ID" format(uuid)
// @Success 200 {object} models.Author "The deleted author"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict - Author still has posts"
// @Router /authors/{authorID} [delete]
func (h authorHandler) deleteAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "authorID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author, err := h.authorRepo.Delete(r.Context(), id)
		if err != nil {
			mapped := wrapStoreError("delete", "author", entityWhere{id}, err)
			if errs.IsForeignKeyConstraintError(mapped) {
				h.logger.Info().Str("authorID", id.String()).Msg("refusing to delete author with posts")
				mapped = errs.NewConflictError("author still has posts")
			}
			h.responder.WriteError(w, mapped)
			return
		}
		h.responder.WriteJSON(w, author)
	}
}
