package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	postRepo    *database.PostRepo
}

func newCommentHandler(commentRepo *database.CommentRepo, postRepo *database.PostRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

// addComment creates a comment on a post. The comment's author is the
// viewer and its post comes from the URL, nothing in the payload can
// override either. The response is always a redirect back to the post
// detail view: invalid input is dropped without an error, matching the
// historical behavior of the product.
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := ctxViewerID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("post"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}

		detailURL := "/posts/" + post.ID.String()

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			http.Redirect(w, r, detailURL, http.StatusSeeOther)
			return
		}

		comment := models.Comment{
			Text:     req.Text,
			PostID:   post.ID,
			AuthorID: viewerID,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		http.Redirect(w, r, detailURL, http.StatusSeeOther)
	}
}

// updateComment edits a comment's text. Non-authors are redirected to
// the post detail view with nothing changed.
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := ctxViewerID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		postID, commentID, err := commentPathIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.FindByIDForPost(commentID, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("comment"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}

		detailURL := "/posts/" + postID.String()

		if comment.AuthorID != viewerID {
			http.Redirect(w, r, detailURL, http.StatusSeeOther)
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.Malformed("comment"))
			return
		}
		if req.Text == "" {
			h.responder.WriteError(w, errs.NewValidationError("text", "text is required"))
			return
		}

		comment.Text = req.Text
		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update comment", "comment", err))
			return
		}

		http.Redirect(w, r, detailURL, http.StatusSeeOther)
	}
}

// confirmDeleteComment returns the comment as the confirmation step
// before deletion.
func (h commentHandler) confirmDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, commentID, err := commentPathIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.FindByIDForPost(commentID, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("comment"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"comment": comment,
			"confirm": "submit DELETE to remove this comment",
		})
	}
}

// deleteComment removes a comment when the viewer owns it; otherwise it
// silently redirects to the post detail view.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := ctxViewerID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		postID, commentID, err := commentPathIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.FindByIDForPost(commentID, postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("comment"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}

		detailURL := "/posts/" + postID.String()

		if comment.AuthorID != viewerID {
			http.Redirect(w, r, detailURL, http.StatusSeeOther)
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		http.Redirect(w, r, detailURL, http.StatusSeeOther)
	}
}

func commentPathIDs(r *http.Request) (postID, commentID uuid.UUID, err error) {
	postID, parseErr := uuid.Parse(chi.URLParam(r, "postID"))
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, errs.NewBadRequestError("invalid postID")
	}
	commentID, parseErr = uuid.Parse(chi.URLParam(r, "commentID"))
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, errs.NewBadRequestError("invalid commentID")
	}
	return postID, commentID, nil
}
