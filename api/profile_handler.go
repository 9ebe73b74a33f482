package api

import (
	"encoding/json"
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

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	postRepo  *database.PostRepo
}

func newProfileHandler(userRepo *database.UserRepo, postRepo *database.PostRepo) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		postRepo:  postRepo,
	}
}

type profileRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ProfileListing is a user's public profile together with one page of
// their posts
type ProfileListing struct {
	Profile models.User    `json:"profile"`
	Page    *database.Page `json:"page"`
}

// getProfile returns a user's profile and their posts. The owner sees
// every post including unpublished and future-dated ones; everyone else
// goes through the visibility filter.
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing username"))
			return
		}

		profile, err := h.userRepo.FindByUsername(username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("user"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		viewerID, _ := ctxViewerID(r.Context())
		isOwner := viewerID == profile.ID

		page, err := h.postRepo.AuthorPage(profile.ID, isOwner, time.Now(), database.ParsePage(r.URL.Query().Get("page")))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, ProfileListing{Profile: *profile, Page: page})
	}
}

// getOwnProfile returns the authenticated viewer's profile
func (h profileHandler) getOwnProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := ctxViewerID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		viewer, err := h.userRepo.FindByID(viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		h.responder.WriteJSON(w, viewer)
	}
}

// updateProfile edits the viewer's own profile. There is no way to
// address anybody else's.
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := ctxViewerID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		viewer, err := h.userRepo.FindByID(viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, errs.Malformed("profile"))
			return
		}

		if req.Username == "" {
			h.responder.WriteError(w, errs.NewValidationError("username", "username is required"))
			return
		}

		viewer.Username = req.Username
		viewer.Email = req.Email
		viewer.FirstName = req.FirstName
		viewer.LastName = req.LastName

		if err := h.userRepo.Update(viewer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		http.Redirect(w, r, "/profiles/"+viewer.Username, http.StatusSeeOther)
	}
}
