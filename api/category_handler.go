package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
	postRepo     *database.PostRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo, postRepo *database.PostRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
	}
}

// CategoryListing is a category page together with one page of its
// visible posts
type CategoryListing struct {
	Category models.Category `json:"category"`
	Page     *database.Page  `json:"page"`
}

// listCategoryPosts returns the visible posts filed under a published
// category. An unpublished category is a not-found for every viewer,
// author included.
func (h categoryHandler) listCategoryPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		category, err := h.categoryRepo.FindPublishedBySlug(slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("category"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}

		page, err := h.postRepo.CategoryPage(category.ID, time.Now(), database.ParsePage(r.URL.Query().Get("page")))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, CategoryListing{Category: *category, Page: page})
	}
}
