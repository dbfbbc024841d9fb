package api

import (
	"net/http"

	"github.com/rpupo63/blog-admin-backend/database"
	"github.com/rpupo63/blog-admin-backend/errs"
	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// getAllTags lists every tag
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		if tags == nil {
			tags = []*models.Tag{}
		}
		h.responder.WriteJSON(w, tags)
	}
}

// @Summary Get tag
// @Tags Tags
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /tags/{tagID} [get]
func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("find", "tag", entityWhere{id}, err))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// @Summary Create tag
// @Tags Tags
// @Accept json
// @Param tag body models.TagInput true "Tag data"
// @Success 201 {object} models.Tag
// @Failure 400 {object} ErrorResponse
// @Router /tags [post]
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.TagInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag := input.Tag()
		if err := h.tagRepo.Add(r.Context(), tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, tag)
	}
}

// @Summary Update tag
// @Tags Tags
// @Accept json
// @Param tagID path string true "Tag ID" format(uuid)
// @Param tag body models.TagInput true "Fields to change"
// @Success 200 {object} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /tags/{tagID} [patch]
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.TagInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		values := input.Values()
		if len(values) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no fields to update"))
			return
		}

		tag, err := h.tagRepo.Update(r.Context(), id, values)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("update", "tag", entityWhere{id}, err))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// @Summary Delete tag
// @Tags Tags
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} models.Tag "The deleted tag"
// @Failure 404 {object} ErrorResponse
// @Router /tags/{tagID} [delete]
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("delete", "tag", entityWhere{id}, err))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}
