package main

import (
	"fmt"
	"net/http"

	"github.com/worklens/worklens-backend-go/internal/config"
	appHTTP "github.com/worklens/worklens-backend-go/internal/handler/http"
	"github.com/worklens/worklens-backend-go/internal/pkg/cron"
	"github.com/worklens/worklens-backend-go/internal/pkg/database"
	"github.com/worklens/worklens-backend-go/internal/pkg/jwt"
	"github.com/worklens/worklens-backend-go/internal/pkg/metricsapi"
	"github.com/worklens/worklens-backend-go/internal/repository/postgresql"
	analyticsService "github.com/worklens/worklens-backend-go/internal/service/analytics"
	reportService "github.com/worklens/worklens-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	analyticsRepo := postgresql.NewAnalyticsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	// Without a configured metrics API every snapshot is computed locally
	var fetcher analyticsService.Fetcher
	if cfg.MetricsAPI.BaseURL != "" {
		fetcher = metricsapi.NewClient(cfg.MetricsAPI)
	}

	analyticsSvc, err := analyticsService.NewAnalyticsService(analyticsRepo, fetcher, cfg.Analytics)
	if err != nil {
		fmt.Println("Error initializing analytics service:", err)
		return
	}
	reportSvc := reportService.NewReportService()

	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)
	reportHandler := appHTTP.NewReportHandler(analyticsSvc, reportSvc)

	scheduler := cron.NewScheduler()
	if fetcher != nil {
		cron.NewAnalyticsJobs(analyticsSvc, cfg.Analytics.RefreshInterval).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		JWTService,
		analyticsHandler,
		reportHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
