package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"github.com/upb/recruitment-platform/repositories/mocks"
	"github.com/upb/recruitment-platform/services/notifications"
	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

func newNotificationRouter(users *mocks.UserRepository, repo *mocks.NotificationRepository, txMgr *mocks.TransactionManager) http.Handler {
	svc := notifications.NewNotificationService(users, repo, txMgr, zap.NewNop())
	h := NewNotificationHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/notify/new-job", h.HandleNotifyNewJob)
	r.Get("/notifications/user/{userID}", h.HandleListForUser)
	r.Put("/notifications/{notificationID}/read", h.HandleMarkRead)
	return r
}

func TestNotificationHandler_NotifyNewJob(t *testing.T) {
	jobID := uuid.New()

	t.Run("fans out to candidates", func(t *testing.T) {
		users := new(mocks.UserRepository)
		users.On("ListByRole", mock.Anything, models.RoleCandidate).Return([]*models.User{{ID: "c-1"}, {ID: "c-2"}, {ID: "c-3"}}, nil)
		repo := new(mocks.NotificationRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		txMgr, tx := mocks.ExpectTransaction(context.Background())
		tx.On("Commit").Return(nil)

		body := `{"jobId":"` + jobID.String() + `","jobTitle":"Go dev","company":"UPB"}`
		w := httptest.NewRecorder()
		newNotificationRouter(users, repo, txMgr).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notify/new-job", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		var msg utils.MessageResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&msg))
		assert.Equal(t, "Notifications created for 3 candidates.", msg.Message)
		repo.AssertNumberOfCalls(t, "Create", 3)
	})

	t.Run("missing job details", func(t *testing.T) {
		users := new(mocks.UserRepository)

		w := httptest.NewRecorder()
		newNotificationRouter(users, nil, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notify/new-job", strings.NewReader(`{"jobTitle":"Go dev"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		users.AssertNotCalled(t, "ListByRole", mock.Anything, mock.Anything)
	})
}

func TestNotificationHandler_ListAndMarkRead(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.NotificationRepository)
	repo.On("ListByUser", mock.Anything, "u-1").Return([]*models.Notification{{ID: id, UserID: "u-1", Type: models.NotificationNewJob}}, nil)
	repo.On("MarkRead", mock.Anything, id).Return(nil)
	missing := uuid.New()
	repo.On("MarkRead", mock.Anything, missing).Return(repositories.ErrNotFound)
	router := newNotificationRouter(nil, repo, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/user/u-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u-1"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/notifications/"+id.String()+"/read", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/notifications/"+missing.String()+"/read", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
