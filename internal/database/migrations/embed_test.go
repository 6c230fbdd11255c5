package migrations

import (
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	reg, err := Registry()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	want := []string{
		"create_clients_table",
		"create_trades_table",
		"create_suitability_letters_table",
		"add_account_type_to_clients",
		"add_powerOfAttorney_annualReviewDate_feesCommissionRate_types_to_clients",
	}
	got := reg.Migrations()
	if len(got) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(got))
	}
	for i, m := range got {
		if m.Version != int64(i+1) {
			t.Errorf("migration %d: expected version %d, got %d", i, i+1, m.Version)
		}
		if m.Description != want[i] {
			t.Errorf("migration %d: expected description %q, got %q", i, want[i], m.Description)
		}
	}
	if reg.Latest() != 5 {
		t.Errorf("expected latest version 5, got %d", reg.Latest())
	}
}

func TestNotNullColumnsCarryDefaults(t *testing.T) {
	reg, err := Registry()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	// Columns added to an existing table must not invalidate existing rows.
	for _, m := range reg.Migrations() {
		for _, line := range strings.Split(m.Script, "\n") {
			upper := strings.ToUpper(line)
			if strings.Contains(upper, "ADD COLUMN") && strings.Contains(upper, "NOT NULL") && !strings.Contains(upper, "DEFAULT") {
				t.Errorf("migration %d adds a NOT NULL column without a default: %s", m.Version, strings.TrimSpace(line))
			}
		}
	}
}
