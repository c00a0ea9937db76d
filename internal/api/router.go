package api

import (
	"net/http"
	"time"

	"taskmanager/internal/api/handler"
	"taskmanager/internal/api/middleware"
	"taskmanager/internal/app/service"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	taskService *service.TaskService,
	userRepo repository.UserRepository,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(collector.Middleware)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService)
		taskHandler := handler.NewTaskHandler(taskService)
		v1.Route("/users", func(users chi.Router) {
			userHandler.RegisterPublicRoutes(users)

			users.Group(func(protected chi.Router) {
				protected.Use(middleware.Authenticator(userRepo))
				userHandler.RegisterProtectedRoutes(protected)
				protected.Route("/{userId}/tasks", taskHandler.RegisterRoutes)
			})
		})
	})

	return r
}
