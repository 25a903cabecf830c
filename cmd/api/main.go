package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/aalshehri/wms-backend/internal/modules/auth"
	"github.com/aalshehri/wms-backend/internal/modules/inventory"
	"github.com/aalshehri/wms-backend/internal/modules/localinv"
	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"github.com/aalshehri/wms-backend/internal/modules/request"
	"github.com/aalshehri/wms-backend/internal/modules/stocklog"
	"github.com/aalshehri/wms-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func newLogger() *logrus.Logger {
	logg := logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logg.SetLevel(level)
	return logg
}

func main() {
	logg := newLogger()

	if err := godotenv.Load(); err != nil {
		logg.Warn("no .env file found, relying on environment")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logg.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		logg.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logg.Fatal(err)
	}
	logg.Info("connected to the database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity & Auth ─────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	authService := auth.NewService(userRepo, jwtSecret)
	authHandler := auth.NewHandler(authService)

	// ── Ledgers & Workflow ──────────────────────────────────
	invRepo := inventory.NewPostgresRepository(db)
	invService := inventory.NewService(invRepo, logg)
	invHandler := inventory.NewHandler(invService)

	localRepo := localinv.NewPostgresRepository(db)
	localService := localinv.NewService(localRepo, logg)
	localHandler := localinv.NewHandler(localService)

	logRepo := stocklog.NewPostgresRepository(db)
	logService := stocklog.NewService(logRepo)
	logHandler := stocklog.NewHandler(logService)

	requestRepo := request.NewPostgresRepository(db)
	requestService := request.NewService(requestRepo, invRepo, logg)
	requestHandler := request.NewHandler(requestService)

	// ── Public routes ───────────────────────────────────────
	userHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	// ── Session-guarded routes ──────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.Verifier(jwtSecret))
		userHandler.RegisterProtectedRoutes(r)
		invHandler.RegisterRoutes(r)
		localHandler.RegisterRoutes(r)
		requestHandler.RegisterRoutes(r)
	})

	// ── Manager-only routes ─────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.Verifier(jwtSecret))
		r.Use(auth.RequireRole(policy.RoleManager))
		logHandler.RegisterRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logg.WithField("port", port).Info("WMS API server starting")
	logg.Fatal(http.ListenAndServe(":"+port, router))
}
