package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"github.com/rpupo63/blogicum-backend/storage"
)

type postHandler struct {
	responder   Responder
	logger      zerolog.Logger
	postRepo    *database.PostRepo
	commentRepo *database.CommentRepo
	userRepo    *database.UserRepo
	store       storage.Store
}

func newPostHandler(postRepo *database.PostRepo, commentRepo *database.CommentRepo, userRepo *database.UserRepo, store storage.Store) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		store:       store,
	}
}

// postRequest is the writable surface of a post. The author is never
// part of it: whoever submits the request owns the post.
type postRequest struct {
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	PubDate    time.Time  `json:"pubDate"`
	LocationID *uuid.UUID `json:"locationId"`
	CategoryID *uuid.UUID `json:"categoryId"`
}

// PostDetail bundles a post with its comments for the detail view
type PostDetail struct {
	Post     models.Post       `json:"post"`
	Comments []*models.Comment `json:"comments"`
}

// listPosts returns one page of all publicly visible posts
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.postRepo.VisiblePage(time.Now(), database.ParsePage(r.URL.Query().Get("page")))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// getPost returns a post with its comments. The author sees the post in
// any state; everyone else only gets it through the visibility filter,
// and a filtered-out post is indistinguishable from a missing one.
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		viewerID, _ := ctxViewerID(r.Context())
		if viewerID != post.AuthorID {
			post, err = h.postRepo.FindVisibleByID(postID, time.Now())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					h.responder.WriteError(w, errs.NewNotFound("post"))
					return
				}
				h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
				return
			}
		}

		// Comments are always shown once the post itself was fetched.
		comments, err := h.commentRepo.FindByPost(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, PostDetail{Post: *post, Comments: comments})
	}
}

// createPost creates a new post owned by the viewer and redirects to
// their profile. The stored author is always the viewer, regardless of
// anything in the payload.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := ctxViewerID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.Malformed("post"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewValidationError("title", "title is required"))
			return
		}
		if req.Text == "" {
			h.responder.WriteError(w, errs.NewValidationError("text", "text is required"))
			return
		}
		if req.PubDate.IsZero() {
			req.PubDate = time.Now()
		}

		post := models.Post{
			Title:      req.Title,
			Text:       req.Text,
			PubDate:    req.PubDate,
			LocationID: req.LocationID,
			CategoryID: req.CategoryID,
			AuthorID:   viewerID,
			Publication: models.Publication{
				IsPublished: true,
			},
		}

		if err := h.postRepo.Add(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create post", "post", err))
			return
		}

		viewer, err := h.userRepo.FindByID(viewerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		http.Redirect(w, r, "/profiles/"+viewer.Username, http.StatusSeeOther)
	}
}

// updatePost edits a post. A viewer who is not the author is bounced
// back to the detail view with nothing changed and no error surfaced.
func (h postHandler) updatePost() http.HandlerFunc {
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

		if post.AuthorID != viewerID {
			http.Redirect(w, r, "/posts/"+postID.String(), http.StatusSeeOther)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.Malformed("post"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewValidationError("title", "title is required"))
			return
		}
		if req.Text == "" {
			h.responder.WriteError(w, errs.NewValidationError("text", "text is required"))
			return
		}

		post.Title = req.Title
		post.Text = req.Text
		if !req.PubDate.IsZero() {
			post.PubDate = req.PubDate
		}
		post.LocationID = req.LocationID
		post.CategoryID = req.CategoryID

		if err := h.postRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update post", "post", err))
			return
		}

		http.Redirect(w, r, "/posts/"+postID.String(), http.StatusSeeOther)
	}
}

// confirmDeletePost returns the post as the confirmation step before
// deletion; the DELETE verb is the explicit confirmation submission.
func (h postHandler) confirmDeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		h.responder.WriteJSON(w, map[string]any{
			"post":    post,
			"confirm": "submit DELETE to remove this post and its comments",
		})
	}
}

// deletePost removes a post when the viewer owns it; otherwise it
// silently redirects to the detail view.
func (h postHandler) deletePost() http.HandlerFunc {
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

		if post.AuthorID != viewerID {
			http.Redirect(w, r, "/posts/"+postID.String(), http.StatusSeeOther)
			return
		}

		if err := h.postRepo.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete post", "post", err))
			return
		}

		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

// uploadPostImage stores an uploaded image and records its path on the
// post. Only the author can attach an image.
func (h postHandler) uploadPostImage() http.HandlerFunc {
	const maxImageSize = 10 << 20 // 10MB

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

		if post.AuthorID != viewerID {
			http.Redirect(w, r, "/posts/"+postID.String(), http.StatusSeeOther)
			return
		}

		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("image", "could not parse upload"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("image", "image file is required"))
			return
		}
		defer file.Close()

		path, err := h.store.Save(r.Context(), header.Filename, file)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to store post image")
			h.responder.WriteError(w, errs.NewInternalError("failed to store image"))
			return
		}

		if err := h.postRepo.SetImage(postID, path); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update post", "post", err))
			return
		}

		http.Redirect(w, r, "/posts/"+postID.String(), http.StatusSeeOther)
	}
}
