package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sneakerhub/internal/app"
	"sneakerhub/internal/model"
	"sneakerhub/internal/repository"
	"sneakerhub/internal/transport/http/middleware"
)

const testSecret = "handler-test-secret"

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	authService := app.NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour)
	authHandler := NewAuthHandler(authService)

	router := gin.New()
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	profileGroup := router.Group("/profile")
	profileGroup.Use(middleware.AuthJWT(testSecret))
	profileGroup.GET("", authHandler.Profile)
	profileGroup.PUT("/update-email", authHandler.UpdateEmail)
	profileGroup.PUT("/update-password", authHandler.UpdatePassword)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signupAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"username": "kicks",
		"email":    "kicks@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var parsed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	require.NotEmpty(t, parsed.Data.Token)
	return parsed.Data.Token
}

func TestSignupEndpoint(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"username": "kicks",
		"email":    "kicks@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.NotContains(t, rec.Body.String(), "password", "response must not carry the hash")

	dup := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"username": "kicks",
		"email":    "fresh@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, dup.Code)
}

func TestSignupEndpointRejectsBadPayload(t *testing.T) {
	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/signup", "", map[string]string{
		"username": "kicks",
		"email":    "not-an-email",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := newAuthTestRouter(t)
	signupAndLogin(t, router)

	ok := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "kicks",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, ok.Code)

	bad := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "kicks",
		"password": "wrong-password-1",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestProfileEndpoint(t *testing.T) {
	router := newAuthTestRouter(t)
	token := signupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"kicks"`)
	assert.NotContains(t, rec.Body.String(), "password")

	unauth := doJSON(t, router, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, unauth.Code)

	garbage := doJSON(t, router, http.MethodGet, "/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, garbage.Code)
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	router := newAuthTestRouter(t)
	token := signupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPut, "/profile/update-password", token, map[string]string{
		"password": "brand-new-pass-1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	relogin := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "kicks",
		"password": "brand-new-pass-1",
	})
	assert.Equal(t, http.StatusOK, relogin.Code)

	stale := doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "kicks",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusUnauthorized, stale.Code)
}

func TestUpdateEmailEndpoint(t *testing.T) {
	router := newAuthTestRouter(t)
	token := signupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPut, "/profile/update-email", token, map[string]string{
		"email": "new@example.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	profile := doJSON(t, router, http.MethodGet, "/profile", token, nil)
	assert.Contains(t, profile.Body.String(), `"email":"new@example.com"`)
}
