package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookmarkd/internal/auth"
	"bookmarkd/internal/database"
	"bookmarkd/internal/repositories"
	"bookmarkd/internal/services"
)

const testJWTSecret = "test-secret-test-secret-test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *auth.JWTManager
}

// setupServer wires the real services over an in-memory database, with the
// recommendation provider left unconfigured so it always serves the
// fallback list.
func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	jwtManager, err := auth.NewJWTManager(testJWTSecret, time.Hour)
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(db)
	router := gin.New()
	RegisterRoutes(router, db, jwtManager,
		services.NewAuthService(db, userRepo),
		services.NewLibraryService(db,
			repositories.NewBookRepository(db),
			repositories.NewLibraryEntryRepository(db)),
		services.NewGoalService(db, userRepo,
			repositories.NewGoalRepository(db)),
		services.NewClubService(db,
			repositories.NewClubRepository(db),
			repositories.NewMembershipRepository(db),
			repositories.NewPostRepository(db),
			repositories.NewCommentRepository(db)),
		services.NewRecommendationService("", "", "", time.Second),
	)

	return &testServer{router: router, db: db, jwt: jwtManager}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

// registerUser creates an account through the API and returns its token.
func (s *testServer) registerUser(t *testing.T, username string) string {
	t.Helper()
	resp := s.request(t, http.MethodPost, "/auth/register", "", gin.H{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) []any {
	t.Helper()
	var body []any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}
