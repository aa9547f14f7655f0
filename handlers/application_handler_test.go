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
	"github.com/upb/recruitment-platform/services/applications"
	"go.uber.org/zap"
)

type applicationDeps struct {
	jobs          *mocks.JobRepository
	applications  *mocks.ApplicationRepository
	notifications *mocks.NotificationRepository
	tx            *mocks.Transaction
	router        http.Handler
}

func newApplicationRouter() *applicationDeps {
	d := &applicationDeps{
		jobs:          new(mocks.JobRepository),
		applications:  new(mocks.ApplicationRepository),
		notifications: new(mocks.NotificationRepository),
	}
	txMgr, tx := mocks.ExpectTransaction(context.Background())
	d.tx = tx

	svc := applications.NewApplicationService(d.jobs, d.applications, d.notifications, txMgr, zap.NewNop())
	h := NewApplicationHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/applications", h.HandleCreate)
	r.Get("/applications/candidate/{candidateID}", h.HandleListByCandidate)
	r.Get("/applications/job/{jobID}", h.HandleListByJob)
	r.Get("/applications/recruiter/{recruiterID}", h.HandleListByRecruiter)
	r.Put("/applications/{applicationID}/status", h.HandleUpdateStatus)
	r.Delete("/applications/{applicationID}", h.HandleDelete)
	d.router = r
	return d
}

func (d *applicationDeps) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	return w
}

func TestApplicationHandler_Create(t *testing.T) {
	job := &models.Job{ID: uuid.New(), Title: "Go dev", Company: "UPB", RecruiterID: "rec-1"}
	body := `{"job_id":"` + job.ID.String() + `","job_title":"Go dev","candidate_id":"cand-1","candidate_name":"Ana","cv_url":"/cv/view/abc"}`

	t.Run("created with pending status", func(t *testing.T) {
		d := newApplicationRouter()
		d.jobs.On("GetByID", mock.Anything, job.ID).Return(job, nil)
		d.applications.On("Create", mock.Anything, mock.Anything).Return(nil)
		d.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)
		d.tx.On("Commit").Return(nil)

		w := d.do(http.MethodPost, "/applications", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		var app map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&app))
		assert.Equal(t, "pending", app["status"])
		assert.Equal(t, float64(0), app["match_score"])
		assert.Equal(t, "rec-1", app["job"].(map[string]interface{})["recruiter_id"])
		assert.NotContains(t, app, "updated_at")
	})

	t.Run("unknown job", func(t *testing.T) {
		d := newApplicationRouter()
		d.jobs.On("GetByID", mock.Anything, job.ID).Return(nil, repositories.ErrNotFound)

		w := d.do(http.MethodPost, "/applications", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("job without recruiter", func(t *testing.T) {
		d := newApplicationRouter()
		d.jobs.On("GetByID", mock.Anything, job.ID).Return(&models.Job{ID: job.ID}, nil)

		w := d.do(http.MethodPost, "/applications", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "job has no recruiter", decodeError(t, w).Error)
	})

	t.Run("missing fields", func(t *testing.T) {
		d := newApplicationRouter()

		w := d.do(http.MethodPost, "/applications", `{"job_id":"`+job.ID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		d.jobs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestApplicationHandler_ListByJob(t *testing.T) {
	jobID := uuid.New()

	t.Run("lists", func(t *testing.T) {
		d := newApplicationRouter()
		d.jobs.On("GetByID", mock.Anything, jobID).Return(&models.Job{ID: jobID}, nil)
		d.applications.On("ListByJob", mock.Anything, jobID).Return([]*models.Application{}, nil)

		w := d.do(http.MethodGet, "/applications/job/"+jobID.String(), "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("unknown job", func(t *testing.T) {
		d := newApplicationRouter()
		d.jobs.On("GetByID", mock.Anything, jobID).Return(nil, repositories.ErrNotFound)

		w := d.do(http.MethodGet, "/applications/job/"+jobID.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApplicationHandler_CandidateAndRecruiterLists(t *testing.T) {
	d := newApplicationRouter()
	d.applications.On("ListByCandidate", mock.Anything, "cand-1").Return([]*models.Application{{ID: uuid.New()}}, nil)
	d.applications.On("ListByRecruiter", mock.Anything, "rec-1").Return([]*models.Application{}, nil)

	w := d.do(http.MethodGet, "/applications/candidate/cand-1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = d.do(http.MethodGet, "/applications/recruiter/rec-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	id := uuid.New()
	target := "/applications/" + id.String() + "/status"

	t.Run("accepted", func(t *testing.T) {
		d := newApplicationRouter()
		d.applications.On("UpdateStatus", mock.Anything, id, models.ApplicationAccepted, mock.Anything).Return(nil)

		w := d.do(http.MethodPut, target, `{"status":"accepted"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp StatusResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, models.ApplicationAccepted, resp.Status)
	})

	t.Run("missing status", func(t *testing.T) {
		d := newApplicationRouter()

		w := d.do(http.MethodPut, target, `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		d := newApplicationRouter()

		w := d.do(http.MethodPut, target, `{"status":"hired"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "invalid status", body.Error)
		assert.Equal(t, "hired", body.Details["status"])
	})

	t.Run("missing application", func(t *testing.T) {
		d := newApplicationRouter()
		d.applications.On("UpdateStatus", mock.Anything, id, models.ApplicationRejected, mock.Anything).Return(repositories.ErrNotFound)

		w := d.do(http.MethodPut, target, `{"status":"rejected"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApplicationHandler_Delete(t *testing.T) {
	id := uuid.New()

	d := newApplicationRouter()
	d.applications.On("Delete", mock.Anything, id).Return(repositories.ErrNotFound)

	w := d.do(http.MethodDelete, "/applications/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application not found", decodeError(t, w).Error)
}
