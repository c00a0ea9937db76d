package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmanager/internal/api"
	"taskmanager/internal/app/service"
	"taskmanager/internal/common/security"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/platform/cache"
	"taskmanager/internal/platform/config"
	"taskmanager/internal/platform/database"
	"taskmanager/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database & run migrations
	database.Connect()
	defer database.Close()
	if err := database.RunMigrations(config.AppConfig.DBUrl); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}
	fmt.Println("Database connected and migrated.")

	// 4. Initialize Redis
	cache.Connect()
	defer cache.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)

	// 6. Initialize Services
	userService := service.NewUserService(userRepo, cache.RDB)
	authService := service.NewAuthService(userRepo, userService)
	taskService := service.NewTaskService(taskRepo)

	// 7. Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, taskService, userRepo, collector, registry)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
