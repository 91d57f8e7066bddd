package main

import (
	"context"
	"fmt"
	"os"

	"github.com/davral/siteworks/internal/auth"
	"github.com/davral/siteworks/internal/config"
	"github.com/davral/siteworks/internal/db"
	"github.com/davral/siteworks/internal/excel"
	httphandler "github.com/davral/siteworks/internal/http"
	"github.com/davral/siteworks/internal/http/middleware"
	"github.com/davral/siteworks/internal/logger"
	"github.com/davral/siteworks/internal/pdf"
	"github.com/davral/siteworks/internal/repository"
	"github.com/davral/siteworks/internal/service"
	"github.com/davral/siteworks/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	collections := store.NewGormStore(database)

	users := repository.NewUserRepository(collections, log)
	projects := repository.NewProjectRepository(collections, log)
	progress := repository.NewProgressRepository(collections, log)
	payments := repository.NewPaymentRepository(collections, log)
	vehicles := repository.NewVehicleRepository(collections, log)
	drivers := repository.NewDriverRepository(collections, log)
	tenders := repository.NewTenderRepository(collections, log)
	bills := repository.NewTenderBillRepository(collections, log)
	submissions := repository.NewSubmissionRepository(collections, log)
	backups := repository.NewBackupLinkRepository(collections, log)

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	submissionService := service.NewSubmissionService(submissions, projects, cfg.Submission.TimerSeconds, log)
	services := httphandler.Services{
		Auth:        service.NewAuthService(users, issuer, log),
		Projects:    service.NewProjectService(projects, progress, log),
		Payments:    service.NewPaymentService(payments, projects, log),
		Submissions: submissionService,
		Stats:       service.NewStatsService(projects, progress, payments, vehicles, cfg.Stats.RecentUpdates, log),
		Fleet:       service.NewFleetService(vehicles, drivers, log),
		Tenders:     service.NewTenderService(tenders, bills, log),
		Backups:     service.NewBackupService(backups, log),
		Reports:     service.NewReportService(projects, payments, users, tenders, bills, pdfGenerator, excelGenerator, log),
	}

	pollCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	go submissionService.RunExpiryPoller(pollCtx, cfg.Submission.PollInterval)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(services, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting siteworks service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
