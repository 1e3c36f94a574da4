package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"khata/internal/models"
	"khata/internal/testutil"
)

func TestAuditTrailCompleteness(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newLedgerServices(db)

	a, err := svc.tx.CreateTransaction(ctx, validInput(t), "admin@test.com")
	testutil.AssertNoError(t, err)
	b, err := svc.tx.CreateTransaction(ctx, validInput(t), "admin@test.com")
	testutil.AssertNoError(t, err)

	purpose := "Edited"
	_, err = svc.tx.UpdateTransaction(ctx, a.ID, TransactionUpdate{Purpose: &purpose}, "admin@test.com")
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, svc.tx.DeleteTransaction(ctx, b.ID, "admin@test.com"))

	logs, err := svc.audit.ListLogs(ctx, AuditFilter{})
	testutil.AssertNoError(t, err)

	counts := map[models.AuditAction]int{}
	for _, entry := range logs {
		counts[entry.Action]++
	}
	if counts[models.AuditActionCreate] != 2 || counts[models.AuditActionUpdate] != 1 || counts[models.AuditActionDelete] != 1 {
		t.Errorf("unexpected action counts: %v", counts)
	}
	if logs[0].Action != models.AuditActionDelete {
		t.Errorf("expected newest entry first, got %s", logs[0].Action)
	}
}

func TestAuditRecord_RollsBackWithCaller(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	_ = db.Transaction(func(tx *gorm.DB) error {
		testutil.AssertNoError(t, svc.Record(tx, models.AuditActionCreate, models.EntityTransaction, "x", "admin@test.com", nil, map[string]string{"a": "b"}))
		return gorm.ErrInvalidTransaction
	})

	logs, err := svc.ListLogs(context.Background(), AuditFilter{})
	testutil.AssertNoError(t, err)
	if len(logs) != 0 {
		t.Errorf("expected rolled back entry to vanish, got %d", len(logs))
	}
}

func TestAuditSubscribe(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newLedgerServices(db)

	var sizes []int
	unsubscribe, err := svc.audit.Subscribe(ctx, func(logs []models.AuditLog) {
		sizes = append(sizes, len(logs))
	})
	testutil.AssertNoError(t, err)
	defer unsubscribe()

	_, err = svc.tx.CreateTransaction(ctx, validInput(t), "admin@test.com")
	testutil.AssertNoError(t, err)

	if len(sizes) != 2 || sizes[0] != 0 || sizes[1] != 1 {
		t.Errorf("unexpected deliveries: %v", sizes)
	}
}

func TestListReceivers_MostUsedFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newLedgerServices(db)

	for _, name := range []string{"Sara", "Ali", "Ali"} {
		in := validInput(t)
		in.To = name
		_, err := svc.tx.CreateTransaction(ctx, in, "admin@test.com")
		testutil.AssertNoError(t, err)
	}

	receivers, err := svc.receivers.ListReceivers(ctx)
	testutil.AssertNoError(t, err)
	if len(receivers) != 2 || receivers[0].ID != "ali" || receivers[1].ID != "sara" {
		t.Errorf("unexpected order: %+v", receivers)
	}

	err = svc.receivers.Increment(db, "   ")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newLedgerServices(db)
	settings := NewSettingsService(db, decimalFromInt(85))
	dash := NewDashboardService(svc.tx, settings, svc.receivers, []string{"Muhammad Raiz"})

	for _, in := range []TransactionInput{
		{From: "Muhammad Raiz", To: "Ali", Amount: decimalFromInt(100), Currency: models.CurrencyPKR, Date: testutil.Day(t, "2024-01-01")},
		{From: "Muhammad Raiz", To: "Ali", Amount: decimalFromInt(50), Currency: models.CurrencyPKR, Date: testutil.Day(t, "2024-01-02")},
		{From: "Muhammad Raiz", To: "Sara", Amount: decimalFromInt(10), Currency: models.CurrencyKWD, Date: testutil.Day(t, "2024-01-03")},
	} {
		_, err := svc.tx.CreateTransaction(ctx, in, "admin@test.com")
		testutil.AssertNoError(t, err)
	}

	d, err := dash.GetDashboard(ctx)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, d.Summary.Totals.PKR, "150")
	testutil.AssertDecimal(t, d.Summary.Totals.KWD, "10")
	testutil.AssertDecimal(t, d.Summary.GrandTotal, "1000")
	testutil.AssertDecimal(t, d.Summary.Participants[0].Sent.PKR, "150")
	if d.Receivers != 2 {
		t.Errorf("expected 2 receivers, got %d", d.Receivers)
	}
	if d.LastEditAt != nil {
		t.Error("expected no last edit before any rate update")
	}

	_, err = settings.UpdateRate(ctx, decimalFromInt(100), "rate@test.com")
	testutil.AssertNoError(t, err)
	d, err = dash.GetDashboard(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, d.Summary.GrandTotal, "1150")
	if d.LastEditor != "rate@test.com" || d.LastEditAt == nil {
		t.Errorf("unexpected last edit: %q %v", d.LastEditor, d.LastEditAt)
	}
}
