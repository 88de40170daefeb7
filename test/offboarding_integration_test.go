//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	repo "github.com/ogurasousui/offboarding-engine/internal/adapters/repository/postgres"
	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
	"github.com/ogurasousui/offboarding-engine/internal/platform/config"
	pg "github.com/ogurasousui/offboarding-engine/internal/platform/db/postgres"
)

const migrationsDir = "assets/migrations"

// stubPayroll は DB 統合テスト用の給与精算スタブです。
type stubPayroll struct {
	calls int
}

func (p *stubPayroll) InitiateFinalSettlement(_ context.Context, _ string) (*settlement.Acknowledgement, error) {
	p.calls++
	return &settlement.Acknowledgement{Reference: "PAY-IT"}, nil
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}

func TestOffboardingFlowIntegration(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	txManager := pg.NewTransactionManager(pool)
	clock := stubClock{now: time.Now().UTC().Truncate(time.Microsecond)}

	terminationRepo := repo.NewTerminationRepository(pool)
	clearanceRepo := repo.NewClearanceRepository(pool)
	settlementRepo := repo.NewSettlementRepository(pool)

	payroll := &stubPayroll{}

	clearanceSvc := clearance.NewService(clearanceRepo, clock, txManager)
	terminationSvc := termination.NewService(terminationRepo, clearance.NewCreatorAdapter(clearanceSvc), clock, txManager, []string{"IT", "HR"})
	settlementSvc := settlement.NewService(terminationRepo, clearanceRepo, settlementRepo, payroll, clock, txManager)

	created, err := terminationSvc.CreateRequest(ctx, termination.CreateRequestInput{
		EmployeeID:      "emp-integration",
		Initiator:       termination.InitiatorEmployee,
		Reason:          termination.ReasonResignation,
		TerminationDate: clock.now.AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("CreateRequest error: %v", err)
	}

	// 未裁定の申請がある間は同一社員の新規申請を拒否する。
	if _, err := terminationSvc.CreateRequest(ctx, termination.CreateRequestInput{
		EmployeeID:      "emp-integration",
		Initiator:       termination.InitiatorHR,
		Reason:          termination.ReasonDismissal,
		TerminationDate: clock.now.AddDate(0, 2, 0),
	}); !errors.Is(err, termination.ErrOpenRequestExists) {
		t.Fatalf("expected ErrOpenRequestExists, got %v", err)
	}

	approved, err := terminationSvc.DecideRequest(ctx, termination.DecideRequestInput{
		RequestID: created.ID,
		Decision:  termination.DecisionApprove,
		DeciderID: "hr-integration",
		Equipment: []termination.EquipmentSeed{{Name: "Laptop", Condition: "good"}},
	})
	if err != nil {
		t.Fatalf("DecideRequest error: %v", err)
	}
	if approved.Status != termination.StatusApproved {
		t.Fatalf("expected approved status, got %s", approved.Status)
	}

	checklist, err := clearanceSvc.GetChecklistByTermination(ctx, clearance.GetChecklistByTerminationInput{TerminationID: created.ID})
	if err != nil {
		t.Fatalf("GetChecklistByTermination error: %v", err)
	}
	if len(checklist.Items) != 2 || len(checklist.Equipment) != 1 {
		t.Fatalf("unexpected checklist shape: %+v", checklist)
	}

	// ゲート未充足の間は発火できない。
	if _, err := settlementSvc.TriggerFinalSettlement(ctx, settlement.TriggerInput{
		TerminationID: created.ID,
		ActorID:       "hr-integration",
	}); !errors.Is(err, settlement.ErrGateNotSatisfied) {
		t.Fatalf("expected ErrGateNotSatisfied, got %v", err)
	}

	for _, department := range []string{"IT", "HR"} {
		if _, err := clearanceSvc.UpdateDepartmentItem(ctx, clearance.UpdateDepartmentItemInput{
			ChecklistID: checklist.ID,
			Department:  department,
			Status:      clearance.ItemStatusApproved,
			ActorID:     "mgr-integration",
		}); err != nil {
			t.Fatalf("UpdateDepartmentItem(%s) error: %v", department, err)
		}
	}

	if _, err := clearanceSvc.UpdateEquipmentItem(ctx, clearance.UpdateEquipmentItemInput{
		ChecklistID: checklist.ID,
		Name:        "Laptop",
		Returned:    true,
	}); err != nil {
		t.Fatalf("UpdateEquipmentItem error: %v", err)
	}

	if _, err := clearanceSvc.UpdateCardReturn(ctx, clearance.UpdateCardReturnInput{
		ChecklistID: checklist.ID,
		Returned:    true,
	}); err != nil {
		t.Fatalf("UpdateCardReturn error: %v", err)
	}

	fired, err := settlementSvc.TriggerFinalSettlement(ctx, settlement.TriggerInput{
		TerminationID: created.ID,
		ActorID:       "hr-integration",
	})
	if err != nil {
		t.Fatalf("TriggerFinalSettlement error: %v", err)
	}
	if fired.PayrollReference != "PAY-IT" {
		t.Fatalf("expected payroll reference recorded, got %q", fired.PayrollReference)
	}

	if _, err := settlementSvc.TriggerFinalSettlement(ctx, settlement.TriggerInput{
		TerminationID: created.ID,
		ActorID:       "hr-other",
	}); !errors.Is(err, settlement.ErrAlreadyTriggered) {
		t.Fatalf("expected ErrAlreadyTriggered, got %v", err)
	}

	if payroll.calls != 1 {
		t.Fatalf("expected payroll called once, got %d", payroll.calls)
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "assets/local.yaml"
}
