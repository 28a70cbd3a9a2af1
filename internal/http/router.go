// Package http wires feature handlers into the API router.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/djmotor90/ghltask/internal/auth"
	"github.com/djmotor90/ghltask/internal/config"
	"github.com/djmotor90/ghltask/internal/ghl"
	"github.com/djmotor90/ghltask/internal/http/features/attachments"
	"github.com/djmotor90/ghltask/internal/http/features/comments"
	"github.com/djmotor90/ghltask/internal/http/features/customfields"
	"github.com/djmotor90/ghltask/internal/http/features/folders"
	"github.com/djmotor90/ghltask/internal/http/features/lists"
	"github.com/djmotor90/ghltask/internal/http/features/me"
	"github.com/djmotor90/ghltask/internal/http/features/oauth"
	"github.com/djmotor90/ghltask/internal/http/features/organizations"
	"github.com/djmotor90/ghltask/internal/http/features/spaces"
	"github.com/djmotor90/ghltask/internal/http/features/tasks"
	"github.com/djmotor90/ghltask/internal/http/features/users"
	"github.com/djmotor90/ghltask/internal/http/middleware"
	"github.com/djmotor90/ghltask/internal/httputil"
	"github.com/djmotor90/ghltask/internal/repository"
)

// RouterConfig holds everything the router needs to register routes.
type RouterConfig struct {
	Logger *slog.Logger
	Config *config.Config

	GHLClient        *ghl.Client
	ProvisionService *auth.ProvisionService
	SessionService   *auth.SessionService
	StateSigner      *auth.StateSigner

	OrganizationsRepo *repository.OrganizationsRepository
	UsersRepo         *repository.UsersRepository
	SpacesRepo        *repository.SpacesRepository
	FoldersRepo       *repository.FoldersRepository
	ListsRepo         *repository.ListsRepository
	TasksRepo         *repository.TasksRepository
	CommentsRepo      *repository.CommentsRepository
	AttachmentsRepo   *repository.AttachmentsRepository
	CustomFieldsRepo  *repository.CustomFieldsRepository
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestSizeLimit(cfg.Config.MaxRequestBodySize))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Config.WebURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimiters := middleware.CreateRateLimiters(cfg.Config.RateLimit, cfg.Logger)
	requireAuth := middleware.Auth(cfg.SessionService)

	oauthHandler := oauth.NewHandler(
		cfg.Logger,
		cfg.GHLClient,
		cfg.ProvisionService,
		cfg.SessionService,
		cfg.StateSigner,
		cfg.Config.CookieSecure,
	)
	meHandler := me.NewHandler(cfg.Logger, cfg.UsersRepo, cfg.SessionService)
	r.Route("/auth", func(r chi.Router) {
		r.Use(rateLimiters["auth"])
		r.Get("/authorize", oauthHandler.Authorize)
		r.Get("/callback", oauthHandler.Callback)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", meHandler.GetMe)
			r.Get("/refresh", meHandler.Refresh)
		})
	})

	orgsHandler := organizations.NewHandler(cfg.Logger, cfg.OrganizationsRepo, cfg.UsersRepo)
	usersHandler := users.NewHandler(cfg.Logger, cfg.UsersRepo)
	spacesHandler := spaces.NewHandler(cfg.Logger, cfg.SpacesRepo)
	foldersHandler := folders.NewHandler(cfg.Logger, cfg.FoldersRepo, cfg.SpacesRepo)
	listsHandler := lists.NewHandler(cfg.Logger, cfg.ListsRepo, cfg.SpacesRepo, cfg.FoldersRepo)
	tasksHandler := tasks.NewHandler(cfg.Logger, cfg.TasksRepo, cfg.ListsRepo, cfg.UsersRepo, cfg.CommentsRepo, cfg.AttachmentsRepo)
	commentsHandler := comments.NewHandler(cfg.Logger, cfg.CommentsRepo, cfg.TasksRepo)
	attachmentsHandler := attachments.NewHandler(cfg.Logger, cfg.AttachmentsRepo, cfg.TasksRepo)
	fieldsHandler := customfields.NewHandler(cfg.Logger, cfg.CustomFieldsRepo, cfg.ListsRepo)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(rateLimiters["api"])

		r.Route("/organizations", func(r chi.Router) {
			r.Get("/me", orgsHandler.GetMine)
			r.Get("/members", orgsHandler.ListMembers)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", usersHandler.List)
			r.Get("/{userID}", usersHandler.Get)
		})

		r.Route("/spaces", func(r chi.Router) {
			r.Get("/", spacesHandler.List)
			r.Post("/", spacesHandler.Create)
			r.Get("/{spaceID}", spacesHandler.Get)
		})

		r.Route("/folders", func(r chi.Router) {
			r.Get("/space/{spaceID}", foldersHandler.ListBySpace)
			r.Post("/space/{spaceID}", foldersHandler.Create)
		})

		r.Route("/lists", func(r chi.Router) {
			r.Get("/space/{spaceID}", listsHandler.ListBySpace)
			r.Post("/space/{spaceID}", listsHandler.CreateInSpace)
			r.Get("/folder/{folderID}", listsHandler.ListByFolder)
			r.Post("/folder/{folderID}", listsHandler.CreateInFolder)
			r.Get("/{listID}", listsHandler.Get)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", tasksHandler.Create)
			r.Get("/list/{listID}", tasksHandler.ListByList)
			r.Get("/{taskID}", tasksHandler.Get)
			r.Put("/{taskID}", tasksHandler.Update)
			r.Delete("/{taskID}", tasksHandler.Delete)
			r.Get("/{taskID}/comments", commentsHandler.ListByTask)
			r.Post("/{taskID}/comments", commentsHandler.Create)
			r.Get("/{taskID}/attachments", attachmentsHandler.ListByTask)
			r.Post("/{taskID}/attachments", attachmentsHandler.Create)
		})

		r.Route("/custom-fields", func(r chi.Router) {
			r.Get("/list/{listID}", fieldsHandler.ListByList)
			r.Post("/list/{listID}", fieldsHandler.Create)
		})
	})

	return r
}
