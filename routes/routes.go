package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/recruitment-platform/app"
	"github.com/upb/recruitment-platform/config"
	"github.com/upb/recruitment-platform/handlers"
	"github.com/upb/recruitment-platform/middleware"
	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

// SetupRoutes builds the router of the service named in deps.Config
func SetupRoutes(deps *app.Dependencies) (http.Handler, error) {
	cfg := deps.Config
	r := NewBaseRouter(cfg, handlers.NewHealthHandler(cfg.Service, deps.DB, deps.Logger), deps.Logger)
	MountUsers(r, handlers.NewUserHandler(deps.Users, deps.Logger), deps.AuthMiddleware)

	switch cfg.Service {
	case config.ServiceJobs:
		MountJobs(r, handlers.NewJobHandler(deps.Jobs, deps.Logger), deps.AuthMiddleware, cfg.Auth.PrivilegedRole)
	case config.ServiceApplications:
		MountApplications(r, handlers.NewApplicationHandler(deps.Applications, deps.Logger))
	case config.ServiceNotifications:
		MountNotifications(r, handlers.NewNotificationHandler(deps.Notifications, deps.Logger))
	case config.ServiceCV:
		MountCV(r, handlers.NewCVHandler(deps.CVs, cfg.Storage.MaxUploadSize, deps.Logger))
	default:
		return nil, fmt.Errorf("unknown service %q", cfg.Service)
	}
	return r, nil
}

// NewBaseRouter returns a router carrying the middleware and probes every
// service shares
func NewBaseRouter(cfg *config.Config, health *handlers.HealthHandler, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

// MountJobs registers the job routes; writes require a caller holding
// privilegedRole
func MountJobs(r chi.Router, h *handlers.JobHandler, auth *middleware.AuthMiddleware, privilegedRole string) {
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/recruiter/{recruiterID}", h.HandleListByRecruiter)
		r.Get("/{jobID}", h.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Use(auth.RequireRole(privilegedRole))
			r.Post("/", h.HandleCreate)
			r.Put("/{jobID}", h.HandleUpdate)
			r.Delete("/{jobID}", h.HandleDelete)
		})
	})
}

// MountUsers registers the caller's own user record routes; every service
// serves them behind RequireAuth
func MountUsers(r chi.Router, h *handlers.UserHandler, auth *middleware.AuthMiddleware) {
	r.Route("/users", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/me", h.HandleGetMe)
		r.Put("/me", h.HandleSyncMe)
	})
}

// MountApplications registers the application routes
func MountApplications(r chi.Router, h *handlers.ApplicationHandler) {
	r.Route("/applications", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/candidate/{candidateID}", h.HandleListByCandidate)
		r.Get("/job/{jobID}", h.HandleListByJob)
		r.Get("/recruiter/{recruiterID}", h.HandleListByRecruiter)
		r.Put("/{applicationID}/status", h.HandleUpdateStatus)
		r.Delete("/{applicationID}", h.HandleDelete)
	})
}

// MountNotifications registers the notification routes
func MountNotifications(r chi.Router, h *handlers.NotificationHandler) {
	r.Post("/notify/new-job", h.HandleNotifyNewJob)
	r.Get("/notifications/user/{userID}", h.HandleListForUser)
	r.Put("/notifications/{notificationID}/read", h.HandleMarkRead)
}

// MountCV registers the CV file routes under /cv
func MountCV(r chi.Router, h *handlers.CVHandler) {
	r.Route("/cv", func(r chi.Router) {
		r.Post("/upload", h.HandleUpload)
		r.Get("/download/{filename}", h.HandleDownload)
		r.Delete("/delete/{filename}", h.HandleDelete)
		r.Get("/view/{uuidPart}", h.HandleView)
		r.Get("/list", h.HandleList)
		r.Get("/get/{cvID}", h.HandleGet)
	})
}
