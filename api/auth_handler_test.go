package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpupo63/blogicum-backend/models"
)

func TestRegistrationAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodPost, "/auth/registration", "", map[string]any{
		"username": "newcomer",
		"email":    "newcomer@example.com",
		"password": "long-enough-password",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	created := decodeJSON[models.User](t, recorder)
	require.Equal(t, "newcomer", created.Username)
	require.NotContains(t, recorder.Body.String(), "long-enough-password")

	// Wrong password does not log in.
	recorder = env.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "newcomer",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	recorder = env.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "newcomer",
		"password": "long-enough-password",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	login := decodeJSON[LoginResponse](t, recorder)
	require.NotEmpty(t, login.Token)

	// The issued token works against an authenticated endpoint.
	recorder = env.do(t, http.MethodGet, "/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	profile := decodeJSON[models.User](t, recorder)
	require.Equal(t, created.ID, profile.ID)
}

func TestRegistrationValidation(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodPost, "/auth/registration", "", map[string]any{
		"username": "short",
		"password": "tiny",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = env.do(t, http.MethodPost, "/auth/registration", "", map[string]any{
		"password": "long-enough-password",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRegistrationDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "taken")

	recorder := env.do(t, http.MethodPost, "/auth/registration", "", map[string]any{
		"username": "taken",
		"password": "long-enough-password",
	})
	require.Equal(t, http.StatusConflict, recorder.Code)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, http.MethodGet, "/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/profile", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestUpdateProfileEditsOwnAccountOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "editable")
	bystander := env.createUser(t, "bystander")

	recorder := env.do(t, http.MethodPut, "/profile", env.tokenFor(t, user), map[string]any{
		"username":  "renamed",
		"email":     "renamed@example.com",
		"firstName": "Re",
		"lastName":  "Named",
	})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Equal(t, "/profiles/renamed", recorder.Header().Get("Location"))

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	require.Equal(t, "renamed", stored.Username)
	require.Equal(t, "Re", stored.FirstName)

	// Nobody else's row moved.
	var other models.User
	require.NoError(t, env.db.First(&other, "id = ?", bystander.ID).Error)
	require.Equal(t, "bystander", other.Username)
}
