package main

import (
	"net/http"

	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/lumenstudio/cms-auth-service/internal/app"
	"github.com/lumenstudio/cms-auth-service/internal/config"
	"github.com/lumenstudio/cms-auth-service/internal/store"
	"github.com/lumenstudio/cms-auth-service/internal/utils"
)

const appName = "cms-auth-service"

func main() {
	utils.InitLogger(appName)
	cfg := config.LoadConfig(appName)

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application: ", err)
	}

	//----------------------------------------------------------------------
	// Daily purge of expired entries for backends without native TTLs.
	//----------------------------------------------------------------------
	if purger, ok := application.Store.(store.Purger); ok {
		c := cron.New()
		_, schErr := c.AddFunc("0 3 * * *", func() {
			removed := purger.PurgeExpired()
			utils.Logger.Infof("Store purge removed %d expired entries", removed)
		})
		if schErr != nil {
			utils.Logger.WithError(schErr).Fatal("Failed to schedule store purge job")
		}
		c.Start()
	}

	router := application.Router()

	allowedOrigins := []string{}
	if cfg.AppURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.AppURL)
	}
	if !cfg.Production {
		allowedOrigins = append(allowedOrigins, "http://localhost:*")
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Csrf-Token"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server: ", err)
	}
}
