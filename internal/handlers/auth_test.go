package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flowerhq/flower-api/internal/constants"
	apierrors "github.com/flowerhq/flower-api/internal/errors"
	"github.com/flowerhq/flower-api/internal/models"
)

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api-login/register", map[string]any{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response apierrors.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)

	var user models.User
	require.NoError(t, env.db.Where("user_name = ?", "newuser").First(&user).Error)
	require.Equal(t, "newuser@example.com", user.UserEmail)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "taken")

	w := env.do(t, http.MethodPost, "/api-login/register", map[string]any{
		"username": "taken",
		"email":    "other@example.com",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "first")

	w := env.do(t, http.MethodPost, "/api-login/register", map[string]any{
		"username": "second",
		"email":    "first@example.com",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusConflict, w.Code)
}

// Registration imposes no password length floor; a five-character
// password registers and logs in like any other.
func TestAuthHandler_Register_ShortPasswordAccepted(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api-login/register", map[string]any{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api-login/register", map[string]any{
		"username": "alice",
		"email":    "other@x.com",
		"password": "pw123",
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api-login/login", map[string]any{
		"username":    "alice",
		"password":    "pw123",
		"remember_me": false,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("user_name = ?", "alice").First(&user).Error)
	session, err := env.sessionRepo.FindByUserID(user.UserID)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(constants.SessionTTL), session.ExpiresAt, 5*time.Second)
}

func TestAuthHandler_CheckUsername(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api-login/check-username", map[string]any{
		"username": "fresh",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		IsUnique bool `json:"is_unique"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsUnique)

	env.registerUser(t, "fresh")

	w = env.do(t, http.MethodPost, "/api-login/check-username", map[string]any{
		"username": "fresh",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.IsUnique)
}

func TestAuthHandler_Login_SetsSessionWithShortTTL(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice")

	cookie := env.loginUser(t, "alice")
	require.NotEmpty(t, cookie.Value)

	session, err := env.sessionRepo.FindByUserID(user.UserID)
	require.NoError(t, err)
	require.Equal(t, cookie.Value, session.SessionID)
	require.False(t, session.IsPersistent)
	require.WithinDuration(t, time.Now().Add(constants.SessionTTL), session.ExpiresAt, 5*time.Second)
}

func TestAuthHandler_Login_RememberMeExtendsTTL(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "bob")

	w := env.do(t, http.MethodPost, "/api-login/login", map[string]any{
		"username":    "bob",
		"password":    "supersecret",
		"remember_me": true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	session, err := env.sessionRepo.FindByUserID(user.UserID)
	require.NoError(t, err)
	require.True(t, session.IsPersistent)
	require.WithinDuration(t, time.Now().Add(constants.PersistentSessionTTL), session.ExpiresAt, 5*time.Second)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "alice")

	w := env.do(t, http.MethodPost, "/api-login/login", map[string]any{
		"username": "alice",
		"password": "wrongpassword",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_ActiveSessionConflict(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "alice")
	env.loginUser(t, "alice")

	w := env.do(t, http.MethodPost, "/api-login/login", map[string]any{
		"username": "alice",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_ExpiredSessionOverwrittenInPlace(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice")
	first := env.loginUser(t, "alice")

	err := env.db.Model(&models.Session{}).
		Where("user_id = ?", user.UserID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	second := env.loginUser(t, "alice")
	require.NotEqual(t, first.Value, second.Value)

	// still exactly one session row for the user
	require.EqualValues(t, 1, env.countRows(t, &models.Session{}, "user_id = ?", user.UserID))

	session, err := env.sessionRepo.FindByUserID(user.UserID)
	require.NoError(t, err)
	require.Equal(t, second.Value, session.SessionID)
	require.True(t, session.ExpiresAt.After(time.Now()))
}

func TestAuthHandler_AutoLogin(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "alice")
	cookie := env.loginUser(t, "alice")

	w := env.do(t, http.MethodPost, "/api-login/auto-login", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var response apierrors.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.Contains(t, response.Message, "alice")
}

func TestAuthHandler_AutoLogin_MissingCookie(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api-login/auto-login", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_AutoLogin_ExpiredSessionDeleted(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice")
	cookie := env.loginUser(t, "alice")

	err := env.db.Model(&models.Session{}).
		Where("user_id = ?", user.UserID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api-login/auto-login", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response apierrors.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Contains(t, response.Message, "expired")

	// stale row is gone, so a retry with the same token is not-found
	require.EqualValues(t, 0, env.countRows(t, &models.Session{}, "user_id = ?", user.UserID))

	w = env.do(t, http.MethodPost, "/api-login/auto-login", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Invalid session ID", response.Message)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice")
	cookie := env.loginUser(t, "alice")

	w := env.do(t, http.MethodPost, "/api-login/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	require.EqualValues(t, 0, env.countRows(t, &models.Session{}, "user_id = ?", user.UserID))

	w = env.do(t, http.MethodPost, "/api-login/logout", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_ResetSessions(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "alice")
	env.registerUser(t, "bob")
	env.loginUser(t, "alice")
	env.loginUser(t, "bob")

	require.EqualValues(t, 2, env.countRows(t, &models.Session{}, "1 = 1"))

	w := env.do(t, http.MethodGet, "/admin/delete/all/the/sessions/BECAREFUL", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.EqualValues(t, 0, env.countRows(t, &models.Session{}, "1 = 1"))
}
