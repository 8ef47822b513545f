package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/anud18/scholarship-system-sub000/internal/api/http"
	"github.com/anud18/scholarship-system-sub000/internal/application"
	"github.com/anud18/scholarship-system-sub000/internal/audit"
	"github.com/anud18/scholarship-system-sub000/internal/auth"
	"github.com/anud18/scholarship-system-sub000/internal/config"
	"github.com/anud18/scholarship-system-sub000/internal/db"
	"github.com/anud18/scholarship-system-sub000/internal/quota"
	"github.com/anud18/scholarship-system-sub000/internal/rbac"
	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
	"github.com/anud18/scholarship-system-sub000/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}

	catalog := scholarship.NewSQLCatalog(dbh)
	apps := application.NewSQLStore(dbh, catalog)
	quotas := quota.NewSQLStore(dbh)
	auditLog := audit.NewLog(dbh)

	users := auth.NewSQLUserStore(dbh)
	if err := bootstrapAdmin(ctx, users, cfg); err != nil {
		log.Fatal("bootstrap admin failed", zap.Error(err))
	}
	authSvc := auth.NewAuthService(cfg.AuthSecret, users)

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatal("blob store", zap.Error(err))
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))
	r.Handle("/metrics", promhttp.Handler())

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Student wizard
		pr.With(rbac.Require("scholarship:view")).
			Get("/scholarships", api.ListScholarshipsHandler(catalog))
		pr.With(rbac.Require("scholarship:view")).
			Get("/scholarships/{code}", api.GetScholarshipHandler(catalog))
		pr.With(rbac.Require("scholarship:view")).
			Get("/scholarships/{code}/schema", api.GetSchemaHandler(catalog))

		pr.With(rbac.Require("application:create")).
			Post("/applications", api.CreateApplicationHandler(apps))
		pr.With(rbac.Require("application:view-own")).
			Get("/applications", api.ListMyApplicationsHandler(apps))
		pr.With(rbac.RequireAny("application:view-own", "application:view-all")).
			Get("/applications/{appID}", api.GetApplicationHandler(apps))
		pr.With(rbac.RequireAny("application:view-own", "application:view-all")).
			Get("/applications/{appID}/progress", api.ProgressHandler(apps))
		pr.With(rbac.Require("application:edit")).
			Put("/applications/{appID}/form", api.SaveFormHandler(apps))
		pr.With(rbac.Require("application:edit")).
			Post("/applications/{appID}/subtypes/{value}", api.ToggleSubTypeHandler(apps))
		pr.With(rbac.Require("application:edit")).
			Put("/applications/{appID}/scholarship", api.ChangeScholarshipHandler(apps))
		pr.With(rbac.Require("application:submit")).
			Post("/applications/{appID}/submit", api.SubmitHandler(apps, auditLog))

		pr.With(rbac.Require("document:upload")).
			Post("/applications/{appID}/documents/{name}", api.UploadDocumentHandler(apps, blobs))
		pr.With(rbac.Require("document:upload")).
			Delete("/applications/{appID}/documents/{name}/{fileID}", api.DeleteDocumentHandler(apps, blobs))
		pr.With(rbac.RequireAny("application:view-own", "application:view-all")).
			Get("/applications/{appID}/documents/{name}/{fileID}", api.DownloadDocumentHandler(apps, blobs))

		// Review dashboard
		pr.With(rbac.Require("application:view-all")).
			Get("/review/applications", api.ListForReviewHandler(apps))
		pr.With(rbac.Require("application:review")).
			Post("/review/applications/{appID}/claim", api.ClaimHandler(apps))
		pr.With(rbac.Require("application:review")).
			Post("/review/applications/{appID}/decision", api.DecideHandler(apps, quotas, auditLog))

		// Quota dashboard
		pr.With(rbac.Require("quota:view")).
			Get("/quotas/{code}", api.GetQuotaMatrixHandler(quotas))
		pr.With(rbac.Require("quota:view")).
			Get("/quotas/{code}/summary", api.QuotaSummaryHandler(quotas))

		// Admin configuration
		pr.With(rbac.Require("scholarship:write")).
			Put("/admin/scholarships/{code}", api.PutScholarshipHandler(catalog))
		pr.With(rbac.Require("scholarship:write")).
			Put("/admin/scholarships/{code}/schema", api.PutSchemaHandler(catalog))
		pr.With(rbac.Require("quota:write")).
			Put("/admin/quotas/{code}/{subType}/{college}", api.PutQuotaCellHandler(quotas))
		pr.With(rbac.Require("audit:view")).
			Get("/admin/audit", api.AuditListHandler(auditLog))
	})

	log.Info("portal listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	var zc zap.Config
	if cfg.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zc.Level = lvl
	}
	log, err := zc.Build()
	if err != nil {
		panic(err)
	}
	return log
}

// bootstrapAdmin seeds the configured admin account so a fresh install is
// immediately operable.
func bootstrapAdmin(ctx context.Context, users auth.UserStore, cfg config.Config) error {
	if _, err := users.Get(ctx, cfg.AdminUser); err == nil {
		return nil
	}
	return users.Put(ctx, auth.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUser,
		PasswordHash: cfg.AdminPassHash,
		Role:         "admin",
	})
}
