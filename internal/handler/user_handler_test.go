package handler_test

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

	"github.com/gr3edydevel0per/N-Layer-API/internal/api"
	"github.com/gr3edydevel0per/N-Layer-API/internal/auth"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/repository"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/service"
	"github.com/gr3edydevel0per/N-Layer-API/internal/handler"
	"github.com/gr3edydevel0per/N-Layer-API/internal/middleware"
	"github.com/gr3edydevel0per/N-Layer-API/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestServer wires the full stack over an in-memory database.
func setupTestServer(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Gadget{}))

	cfg := testutil.TestConfig()
	logger := testutil.TestLogger()
	codec := auth.NewTokenCodec(cfg)

	userRepo := repository.NewUserRepository(db)
	gadgetRepo := repository.NewGadgetRepository(db)

	userService := service.NewUserService(userRepo, codec, cfg, logger)
	gadgetService := service.NewGadgetService(gadgetRepo, models.NewNameGenerator(time.Now().UnixNano()), logger)

	userHandler := handler.NewUserHandler(userService, logger)
	gadgetHandler := handler.NewGadgetHandler(gadgetService, logger)
	authMiddleware := middleware.NewAuthMiddleware(codec, userRepo, logger)

	return api.SetupRouter(userHandler, gadgetHandler, authMiddleware, middleware.NewNoOpRateLimiter(logger))
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, password string) string {
	w := doJSON(r, http.MethodPost, "/api/users/register", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/users/login", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code)

	return parseBody(t, w)["accessToken"].(string)
}

func TestRegisterHandler(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/users/register", gin.H{"email": "a@x.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	body := parseBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotEmpty(t, user["id"])

	// Second registration with the same email conflicts.
	w = doJSON(r, http.MethodPost, "/api/users/register", gin.H{"email": "a@x.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	body = parseBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestRegisterHandler_Validation(t *testing.T) {
	r := setupTestServer(t)

	tests := []struct {
		name    string
		payload gin.H
	}{
		{name: "malformed email", payload: gin.H{"email": "not-an-email", "password": "secret1"}},
		{name: "short password", payload: gin.H{"email": "a@x.com", "password": "abc"}},
		{name: "missing password", payload: gin.H{"email": "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/users/register", tt.payload, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := parseBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Validation error", body["message"])
			assert.NotEmpty(t, body["details"])
		})
	}
}

func TestLoginHandler(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/users/register", gin.H{"email": "a@x.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/users/login", gin.H{"email": "a@x.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.NotEmpty(t, body["accessToken"])
	assert.Equal(t, float64(3600), body["expiresIn"])
}

func TestLoginHandler_UniformInvalidCredentials(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/users/register", gin.H{"email": "a@x.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := doJSON(r, http.MethodPost, "/api/users/login", gin.H{"email": "a@x.com", "password": "wrong-pass"}, "")
	unknownEmail := doJSON(r, http.MethodPost, "/api/users/login", gin.H{"email": "b@x.com", "password": "secret1"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// The two failures must be byte-identical so nothing leaks about which
	// part of the credential was wrong.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestGenerateTokenHandler(t *testing.T) {
	r := setupTestServer(t)
	accessToken := registerAndLogin(t, r, "a@x.com", "secret1")

	// No auth: rejected.
	w := doJSON(r, http.MethodPost, "/api/users/generate-token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// First issuance succeeds and returns the plaintext once.
	w = doJSON(r, http.MethodPost, "/api/users/generate-token", nil, accessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	apiToken := parseBody(t, w)["apiToken"].(string)
	assert.NotEmpty(t, apiToken)

	// Second issuance conflicts.
	w = doJSON(r, http.MethodPost, "/api/users/generate-token", nil, accessToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The issued API token authenticates requests on the gadget routes.
	w = doJSON(r, http.MethodGet, "/api/gadgets", nil, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// But the access token does not: the token spaces are disjoint.
	w = doJSON(r, http.MethodGet, "/api/gadgets", nil, accessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileHandler(t *testing.T) {
	r := setupTestServer(t)
	accessToken := registerAndLogin(t, r, "a@x.com", "secret1")

	w := doJSON(r, http.MethodGet, "/api/users/profile", nil, accessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotEmpty(t, body["id"])
	// Login stamped the last login timestamp.
	assert.NotNil(t, body["lastLogin"])

	w = doJSON(r, http.MethodGet, "/api/users/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
