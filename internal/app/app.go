package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/controllers"
	"github.com/lumenstudio/cms-auth-service/internal/middleware"
	"github.com/lumenstudio/cms-auth-service/internal/repositories"
	"github.com/lumenstudio/cms-auth-service/internal/services"
	"github.com/lumenstudio/cms-auth-service/internal/store"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App owns the long-lived process state: the resolved configuration and
// the selected key-value store. The backend is chosen exactly once
// here; nothing downstream ever branches on it again.
type App struct {
	Config *config.Config
	Store  store.Store
}

func NewApp(cfg *config.Config) (*App, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Store: st}, nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		rs := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		backoff := initialBackoff
		for i := 1; i <= maxRetries; i++ {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			err := rs.Ping(ctx)
			cancel()
			if err == nil {
				utils.Logger.Infof("Connected to Redis at %s on attempt %d", cfg.RedisAddr, i)
				return rs, nil
			}
			utils.Logger.WithError(err).Warnf(
				"Failed to reach Redis on attempt %d/%d. Retrying in %v...",
				i, maxRetries, backoff,
			)
			if i == maxRetries {
				return nil, fmt.Errorf("unable to reach Redis after %d attempts: %w", maxRetries, err)
			}
			time.Sleep(backoff)
			backoff *= 2
		}
		return rs, nil

	case config.StoreFile:
		utils.Logger.Infof("Using file-backed store at %s", cfg.StoreFilePath)
		return store.NewFileStore(cfg.StoreFilePath)

	default:
		utils.Logger.Info("Using in-memory store; state will not survive restarts")
		return store.NewMemoryStore(), nil
	}
}

// Router wires repositories, services and controllers onto the HTTP
// surface. Factored out of main so tests can drive the full stack
// through httptest.
func (a *App) Router() http.Handler {
	cfg := a.Config

	adminRepo := repositories.NewAdminRepository(a.Store, cfg)
	pendingRepo := repositories.NewPendingLoginRepository(a.Store)
	otpRepo := repositories.NewOtpRepository(a.Store)
	csrfRepo := repositories.NewCsrfRepository(a.Store)

	rateLimiter := services.NewRateLimiterService(a.Store)
	csrfService := services.NewCsrfService(csrfRepo, cfg)
	sessionService := services.NewSessionService(cfg)
	otpService := services.NewOtpService(otpRepo, cfg)
	mailer := services.NewMailer(cfg)
	authService := services.NewAuthService(adminRepo, pendingRepo, otpService, sessionService, mailer, cfg)
	accountService := services.NewAccountService(adminRepo)

	authController := controllers.NewAuthController(authService, csrfService, rateLimiter, cfg)
	accountController := controllers.NewAccountController(accountService, csrfService, rateLimiter, cfg)
	adminController := controllers.NewAdminController()
	healthController := controllers.NewHealthController()

	router := mux.NewRouter()
	router.Use(middleware.RecoverMiddleware)

	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	router.HandleFunc("/csrf", authController.Csrf).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/mfa", authController.Mfa).Methods("POST")
	router.HandleFunc("/otp/request", authController.RequestOtp).Methods("POST")
	router.HandleFunc("/otp/verify", authController.VerifyOtp).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")

	guard := middleware.SessionAuthMiddleware(sessionService, cfg.LoginPagePath)

	adminArea := router.PathPrefix("/admin").Subrouter()
	adminArea.Use(guard)
	adminArea.HandleFunc("", adminController.Home).Methods("GET")
	adminArea.HandleFunc("/", adminController.Home).Methods("GET")

	accountArea := router.PathPrefix("/account").Subrouter()
	accountArea.Use(guard)
	accountArea.HandleFunc("", accountController.GetAccount).Methods("GET")
	accountArea.HandleFunc("", accountController.UpdateAccount).Methods("POST")

	return router
}
