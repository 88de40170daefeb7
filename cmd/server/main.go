package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/offboarding-engine/internal/adapters/collaborator"
	"github.com/ogurasousui/offboarding-engine/internal/adapters/httpapi"
	repo "github.com/ogurasousui/offboarding-engine/internal/adapters/repository/postgres"
	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
	"github.com/ogurasousui/offboarding-engine/internal/platform/config"
	pg "github.com/ogurasousui/offboarding-engine/internal/platform/db/postgres"
	"github.com/ogurasousui/offboarding-engine/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	terminationRepo := repo.NewTerminationRepository(dbPool)
	clearanceRepo := repo.NewClearanceRepository(dbPool)
	settlementRepo := repo.NewSettlementRepository(dbPool)
	revocationRepo := repo.NewRevocationRepository(dbPool)

	payroll := collaborator.NewPayrollClient(cfg.Collaborators.PayrollURL)
	identity := collaborator.NewIdentityClient(cfg.Collaborators.IdentityURL)
	directory := collaborator.NewDirectoryClient(cfg.Collaborators.DirectoryURL)

	clearanceSvc := clearance.NewService(clearanceRepo, nil, txManager)
	terminationSvc := termination.NewService(terminationRepo, clearance.NewCreatorAdapter(clearanceSvc), nil, txManager, cfg.Engine.DefaultDepartments)
	settlementSvc := settlement.NewService(terminationRepo, clearanceRepo, settlementRepo, payroll, nil, txManager)
	revocationSvc := revocation.NewService(revocationRepo, directory, identity, nil, txManager, cfg.Engine.UrgentAfterDays)

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)
	handler := httpapi.NewHandler(httpapi.Dependencies{
		Logger:       logger,
		Terminations: terminationSvc,
		Clearances:   clearanceSvc,
		Settlements:  settlementSvc,
		Revocations:  revocationSvc,
	})

	httpServer := server.New(cfg.Server.ListenAddr, handler)

	log.Printf("HTTP server listening on %s", cfg.Server.ListenAddr)

	if err := httpServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
