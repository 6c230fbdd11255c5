package testutil_test

import (
	"testing"

	"vincowealth/internal/errors"
	"vincowealth/internal/models"
	"vincowealth/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	m := testutil.SetupTestDB(t)

	for _, table := range []string{"clients", "trades", "suitability_letters", "schema_migrations"} {
		testutil.AssertRowCount(t, m.DB(), table, tableRows(table))
	}
}

func tableRows(table string) int64 {
	if table == "schema_migrations" {
		return 5
	}
	return 0
}

func TestStoresAreIsolated(t *testing.T) {
	a := testutil.SetupTestDB(t)
	b := testutil.SetupTestDB(t)

	testutil.CreateTestClient(t, a.DB())
	testutil.AssertRowCount(t, a.DB(), "clients", 1)
	testutil.AssertRowCount(t, b.DB(), "clients", 0)
}

func TestMigrateTestStorePartial(t *testing.T) {
	m := testutil.OpenTestStore(t)
	report := testutil.MigrateTestStore(t, m, 3)
	if report.To != 3 || len(report.Applied) != 3 {
		t.Fatalf("expected 3 applied migrations, got to=%d applied=%d", report.To, len(report.Applied))
	}
	if m.DB().Migrator().HasColumn(&models.Client{}, "type_account") {
		t.Error("type_account should not exist before migration 4")
	}
}

func TestFixtures(t *testing.T) {
	m := testutil.SetupTestDB(t)
	db := m.DB()

	client := testutil.CreateTestClient(t, db)
	if client.ID == "" {
		t.Fatal("client should have an id")
	}
	if client.Risk != models.RiskMedium {
		t.Errorf("expected default risk, got %s", client.Risk)
	}

	trade := testutil.CreateTestTrade(t, db, client.ID)
	if trade.ID == 0 || trade.ClientID != client.ID {
		t.Errorf("unexpected trade %+v", trade)
	}

	letter := testutil.CreateTestLetter(t, db, client.ID)
	if letter.Status != models.LetterStatusDraft {
		t.Errorf("expected draft letter, got %s", letter.Status)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.Wrap(errors.ErrClientNotFound, nil)
	appErr := testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
	if appErr.Entity != "clients" {
		t.Errorf("expected entity clients, got %q", appErr.Entity)
	}
}
