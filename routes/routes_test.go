package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/upb/recruitment-platform/app"
	"github.com/upb/recruitment-platform/config"
	"github.com/upb/recruitment-platform/handlers"
	"github.com/upb/recruitment-platform/middleware"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/repositories/mocks"
	"github.com/upb/recruitment-platform/services/jobs"
	"github.com/upb/recruitment-platform/services/users"
	"go.uber.org/zap"
)

type tokenTable map[string]string

func (t tokenTable) ValidateToken(_ context.Context, token string) (*middleware.Identity, error) {
	sub, ok := t[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &middleware.Identity{Subject: sub}, nil
}

type roleTable map[string]string

func (t roleTable) HasRole(_ context.Context, subject, role string) bool {
	return t[subject] == role
}

func testConfig() *config.Config {
	return &config.Config{
		Service: config.ServiceJobs,
		Server:  config.ServerConfig{RequestTimeout: 5 * time.Second},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxAge:         300,
		},
		Auth: config.AuthConfig{PrivilegedRole: "recruiter"},
	}
}

func newJobsRouter(repo *mocks.JobRepository) chi.Router {
	logger := zap.NewNop()
	cfg := testConfig()
	r := NewBaseRouter(cfg, handlers.NewHealthHandler(cfg.Service, nil, logger), logger)

	auth := middleware.NewAuthMiddleware(
		tokenTable{"rec-token": "rec-1", "cand-token": "cand-1"},
		roleTable{"rec-1": "recruiter", "cand-1": "candidate"},
		time.Second,
		logger,
	)
	MountJobs(r, handlers.NewJobHandler(jobs.NewJobService(repo, logger), logger), auth, cfg.Auth.PrivilegedRole)
	return r
}

func postJob(router http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(`{"title":"Go dev","description":"d","company":"UPB"}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJobsRoutes_WriteGate(t *testing.T) {
	t.Run("recruiter creates", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(j *models.Job) bool { return j.RecruiterID == "rec-1" })).Return(nil)

		w := postJob(newJobsRouter(repo), "rec-token")

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("no token", func(t *testing.T) {
		repo := new(mocks.JobRepository)

		w := postJob(newJobsRouter(repo), "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("bad token", func(t *testing.T) {
		w := postJob(newJobsRouter(new(mocks.JobRepository)), "forged")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("candidate is forbidden", func(t *testing.T) {
		repo := new(mocks.JobRepository)

		w := postJob(newJobsRouter(repo), "cand-token")

		assert.Equal(t, http.StatusForbidden, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("delete is gated too", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/jobs/5b1f0c3e-8a2d-4d3c-9a3e-0c2b7f1d9e4a", nil)
		req.Header.Set("Authorization", "Bearer cand-token")
		w := httptest.NewRecorder()
		newJobsRouter(new(mocks.JobRepository)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestJobsRoutes_PublicReads(t *testing.T) {
	repo := new(mocks.JobRepository)
	repo.On("List", mock.Anything).Return([]*models.Job{}, nil)

	w := httptest.NewRecorder()
	newJobsRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBaseRouter(t *testing.T) {
	router := newJobsRouter(new(mocks.JobRepository))

	t.Run("health probe", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown route is JSON 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"endpoint not found","code":"not_found"}`, w.Body.String())
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestUsersRoutes(t *testing.T) {
	newRouter := func(repo *mocks.UserRepository) chi.Router {
		logger := zap.NewNop()
		cfg := testConfig()
		r := NewBaseRouter(cfg, handlers.NewHealthHandler(cfg.Service, nil, logger), logger)
		auth := middleware.NewAuthMiddleware(tokenTable{"cand-token": "cand-1"}, roleTable{}, time.Second, logger)
		MountUsers(r, handlers.NewUserHandler(users.NewUserService(repo, nil, "custom:role", logger), logger), auth)
		return r
	}

	t.Run("sync requires a token", func(t *testing.T) {
		repo := new(mocks.UserRepository)

		w := httptest.NewRecorder()
		newRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("authenticated caller is stored", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByID", mock.Anything, "cand-1").Return(nil, repositories.ErrNotFound)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.ID == "cand-1" })).Return(nil)

		req := httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(`{"display_name":"Carla"}`))
		req.Header.Set("Authorization", "Bearer cand-token")
		w := httptest.NewRecorder()
		newRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})
}

func TestSetupRoutes_UnknownService(t *testing.T) {
	cfg := testConfig()
	cfg.Service = "billing"

	_, err := SetupRoutes(&app.Dependencies{Config: cfg, Logger: zap.NewNop()})

	assert.Error(t, err)
}
