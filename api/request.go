package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/errs"
	"github.com/rpupo63/blog-admin-backend/models"
)

const maxBodySize = 1 << 20 // 1MB

// decodeJSON reads a size-limited JSON body into dst and validates it when
// dst knows how to.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxBodySize)
		case errors.Is(err, io.EOF):
			return errs.Malformed("request body")
		default:
			return errs.NewInvalidJSONError(err)
		}
	}

	if v, ok := dst.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return errs.NewValidationError(err)
		}
	}
	return nil
}

// uuidParam parses the chi URL parameter name as a UUID
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}

// parsePostListQuery reads the filters and paging of GET /posts.
func parsePostListQuery(r *http.Request) (models.PostFindManyArgs, error) {
	q := r.URL.Query()
	args := models.PostFindManyArgs{
		TitleContains: strings.TrimSpace(q.Get("title")),
		OrderBy:       q.Get("orderBy"),
	}

	if raw := q.Get("draft"); raw != "" {
		draft, err := strconv.ParseBool(raw)
		if err != nil {
			return args, errs.NewInvalidFieldError("draft", "must be true or false")
		}
		args.Draft = &draft
	}

	for _, p := range []struct {
		name string
		dst  *uuid.UUID
	}{{"authorId", &args.AuthorID}, {"tagId", &args.TagID}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return args, errs.NewInvalidFieldError(p.name, "must be a UUID")
		}
		*p.dst = id
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{{"skip", &args.Skip}, {"take", &args.Take}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return args, errs.NewInvalidFieldError(p.name, "must be an integer")
		}
		*p.dst = n
	}

	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		args.Descending = true
	default:
		return args, errs.NewInvalidFieldError("order", "must be asc or desc")
	}

	if err := args.Validate(); err != nil {
		return args, errs.NewValidationError(err)
	}
	return args, nil
}
