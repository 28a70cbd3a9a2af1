package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/djmotor90/ghltask/internal/auth"
	"github.com/djmotor90/ghltask/internal/config"
	"github.com/djmotor90/ghltask/internal/ghl"
	httpserver "github.com/djmotor90/ghltask/internal/http"
	"github.com/djmotor90/ghltask/internal/repository"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	orgsRepo := repository.NewOrganizationsRepository(db)
	usersRepo := repository.NewUsersRepository(db)
	spacesRepo := repository.NewSpacesRepository(db)
	foldersRepo := repository.NewFoldersRepository(db)
	listsRepo := repository.NewListsRepository(db)
	tasksRepo := repository.NewTasksRepository(db)
	commentsRepo := repository.NewCommentsRepository(db)
	attachmentsRepo := repository.NewAttachmentsRepository(db)
	customFieldsRepo := repository.NewCustomFieldsRepository(db)

	ghlClient := ghl.NewClient(ghl.Config{
		ClientID:     cfg.GHLClientID,
		ClientSecret: cfg.GHLClientSecret,
		RedirectURI:  cfg.GHLRedirectURI,
		Scopes:       cfg.GHLScopes,
		AuthorizeURL: cfg.GHLAuthorizeURL,
		TokenURL:     cfg.GHLTokenURL,
		APIBaseURL:   cfg.GHLAPIBaseURL,
		APIVersion:   cfg.GHLAPIVersion,
	})

	sessionService := auth.NewSessionService(auth.SessionConfig{
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		JWTSecret:       []byte(cfg.JWTSecret),
		Issuer:          cfg.JWTIssuer,
	})
	provisionService := auth.NewProvisionService(db, orgsRepo, usersRepo, spacesRepo, logger)
	stateSigner := auth.NewStateSigner([]byte(cfg.JWTSecret), cfg.OAuthStateTTL)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger: logger,
		Config: cfg,

		GHLClient:        ghlClient,
		ProvisionService: provisionService,
		SessionService:   sessionService,
		StateSigner:      stateSigner,

		OrganizationsRepo: orgsRepo,
		UsersRepo:         usersRepo,
		SpacesRepo:        spacesRepo,
		FoldersRepo:       foldersRepo,
		ListsRepo:         listsRepo,
		TasksRepo:         tasksRepo,
		CommentsRepo:      commentsRepo,
		AttachmentsRepo:   attachmentsRepo,
		CustomFieldsRepo:  customFieldsRepo,
	})

	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
