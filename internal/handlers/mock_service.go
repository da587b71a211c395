package handlers

import (
	"context"
	"net/http"

	"authsvc/internal/models"
	"authsvc/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginToken   string
	loginErr     error
	updateUser   models.User
	updateErr    error
	parseUser    string
	parseErr     error

	lastRegister       service.RegisterInput
	lastLoginUsername  string
	lastLoginPassword  string
	lastUpdateUsername string
	lastUpdateProfile  models.Profile
	lastParseToken     string
	registerCalls      int
	updateCalls        int
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (models.User, error) {
	m.registerCalls++
	m.lastRegister = in
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}
func (m *mockAuth) UpdateProfile(ctx context.Context, username string, p models.Profile) (models.User, error) {
	m.updateCalls++
	m.lastUpdateUsername = username
	m.lastUpdateProfile = p
	return m.updateUser, m.updateErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}

type mockPublicAPI struct {
	resp       []models.PublicEntry
	err        error
	lastFilter service.EntryFilter
}

func (m *mockPublicAPI) List(ctx context.Context, f service.EntryFilter) ([]models.PublicEntry, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
