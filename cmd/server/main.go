package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookManagement/internal/auth"
	"bookManagement/internal/config"
	"bookManagement/internal/db"
	"bookManagement/internal/httpapi"
	"bookManagement/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Open the user directory DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	// Snapshot the directory once; it stays immutable for the process lifetime.
	users := repository.NewUserRepository(d)
	directory, err := users.LoadAll(context.Background())
	if err != nil {
		log.Fatalf("load user directory: %v", err)
	}
	log.Printf("user directory loaded: %d entries", len(directory))

	// Prepare scope files
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir %s: %v", cfg.Storage.DataDir, err)
	}
	books := repository.NewBookRepository(cfg.Storage.UserBooksPath())
	adminBooks := repository.NewBookRepository(cfg.Storage.AdminBooksPath())
	for _, r := range []*repository.BookRepository{books, adminBooks} {
		if err := r.EnsureFile(); err != nil {
			log.Fatalf("prepare scope file: %v", err)
		}
	}

	api := &httpapi.API{
		Auth:       auth.NewAuthenticator(directory, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Books:      books,
		AdminBooks: adminBooks,
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: httpapi.WithRequestLog(api.Routes()),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()
	log.Printf("HTTP server listening on %s", cfg.HTTP.Address)

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
