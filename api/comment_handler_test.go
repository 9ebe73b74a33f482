package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpupo63/blogicum-backend/models"
)

func TestAddCommentForcesAuthorAndPost(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	commenter := env.createUser(t, "commenter")

	post := env.createPost(t, author, true, time.Now().Add(-time.Hour))
	detailPath := "/posts/" + post.ID.String()

	body := map[string]any{
		"text":     "hello",
		"authorId": author.ID.String(), // ignored
	}
	recorder := env.do(t, http.MethodPost, detailPath+"/comments", env.tokenFor(t, commenter), body)
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Equal(t, detailPath, recorder.Header().Get("Location"))

	var comment models.Comment
	require.NoError(t, env.db.First(&comment).Error)
	require.Equal(t, commenter.ID, comment.AuthorID)
	require.Equal(t, post.ID, comment.PostID)
	require.Equal(t, "hello", comment.Text)
}

func TestAddCommentInvalidInputSilentlyDropped(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	commenter := env.createUser(t, "commenter")

	post := env.createPost(t, author, true, time.Now().Add(-time.Hour))
	detailPath := "/posts/" + post.ID.String()

	// An empty comment redirects as if it succeeded and stores nothing.
	recorder := env.do(t, http.MethodPost, detailPath+"/comments", env.tokenFor(t, commenter), map[string]any{"text": ""})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Equal(t, detailPath, recorder.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestAddCommentRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	post := env.createPost(t, author, true, time.Now().Add(-time.Hour))

	recorder := env.do(t, http.MethodPost, "/posts/"+post.ID.String()+"/comments", "", map[string]any{"text": "hi"})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestUpdateCommentNonAuthorSilentlyRedirects(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	commenter := env.createUser(t, "commenter")
	intruder := env.createUser(t, "intruder")

	post := env.createPost(t, author, true, time.Now().Add(-time.Hour))
	comment := &models.Comment{Text: "original", PostID: post.ID, AuthorID: commenter.ID}
	require.NoError(t, env.db.Create(comment).Error)

	detailPath := "/posts/" + post.ID.String()
	commentPath := detailPath + "/comments/" + comment.ID.String()

	recorder := env.do(t, http.MethodPut, commentPath, env.tokenFor(t, intruder), map[string]any{"text": "defaced"})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Equal(t, detailPath, recorder.Header().Get("Location"))

	var stored models.Comment
	require.NoError(t, env.db.First(&stored, "id = ?", comment.ID).Error)
	require.Equal(t, "original", stored.Text)

	// The author's edit goes through.
	recorder = env.do(t, http.MethodPut, commentPath, env.tokenFor(t, commenter), map[string]any{"text": "edited"})
	require.Equal(t, http.StatusSeeOther, recorder.Code)

	require.NoError(t, env.db.First(&stored, "id = ?", comment.ID).Error)
	require.Equal(t, "edited", stored.Text)
}

func TestDeleteCommentRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	commenter := env.createUser(t, "commenter")
	intruder := env.createUser(t, "intruder")

	post := env.createPost(t, author, true, time.Now().Add(-time.Hour))
	comment := &models.Comment{Text: "bye", PostID: post.ID, AuthorID: commenter.ID}
	require.NoError(t, env.db.Create(comment).Error)

	detailPath := "/posts/" + post.ID.String()
	commentPath := detailPath + "/comments/" + comment.ID.String()

	// Confirmation step leaves the comment in place.
	recorder := env.do(t, http.MethodGet, commentPath+"/delete", env.tokenFor(t, commenter), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// A non-author cannot delete it.
	recorder = env.do(t, http.MethodDelete, commentPath, env.tokenFor(t, intruder), nil)
	require.Equal(t, http.StatusSeeOther, recorder.Code)

	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// The author can.
	recorder = env.do(t, http.MethodDelete, commentPath, env.tokenFor(t, commenter), nil)
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Equal(t, detailPath, recorder.Header().Get("Location"))

	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
