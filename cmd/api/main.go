//	@title			Shoplight Publisher API
//	@version		1.0
//	@description	Publishes product listings (image + record) as files in a GitHub repository via the Contents API.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	UploadSecret
//	@in							header
//	@name						X-Upload-Secret
//	@description				Static shared secret. Only enforced when UPLOAD_SECRET is configured.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shoplight/publisher/internal/api"
	"github.com/shoplight/publisher/internal/config"
	"github.com/shoplight/publisher/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.GitHubToken == "" || cfg.GitHubRepo == "" {
		// Not fatal: the handler reports the misconfiguration per request,
		// so health checks keep working while credentials are being sorted.
		log.Println("warning: GITHUB_TOKEN or GITHUB_REPO not set, uploads will fail")
	}

	gh := store.NewGitHubStore(cfg.GitHubAPIBase, cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubBranch)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, gh),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // store round-trips for large images are slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s, repo=%s@%s)", cfg.Port, cfg.AppEnv, cfg.GitHubRepo, cfg.GitHubBranch)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
