package models

import (
	"testing"

	"vincowealth/internal/uuid"
)

func TestEnumDefaults(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"knowledge", string(KnowledgeLevel("").OrDefault()), "Medium"},
		{"objective", string(Objective("").OrDefault()), "Balance"},
		{"risk", string(RiskLevel("").OrDefault()), "Medium"},
		{"trade account", string(TradeAccountType("").OrDefault()), "ISA"},
		{"asset type", string(AssetType("").OrDefault()), "Equity"},
		{"side", string(TradeSide("").OrDefault()), "Buy"},
		{"letter status", string(LetterStatus("").OrDefault()), "draft"},
		{"explicit value kept", string(RiskLevel("High").OrDefault()), "High"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestEnumValid(t *testing.T) {
	if !AssetType("CFD/SB").Valid() {
		t.Error("expected CFD/SB to be a valid asset type")
	}
	if TradeSide("Short").Valid() {
		t.Error("expected Short to be rejected")
	}
	if LetterStatus("Draft").Valid() {
		t.Error("expected status match to be case sensitive")
	}
	if KnowledgeLevel("").Valid() {
		t.Error("expected empty knowledge level to be invalid before defaults")
	}
}

func TestClientBeforeCreate(t *testing.T) {
	t.Run("assigns id and defaults", func(t *testing.T) {
		c := &Client{FirstName: "Ada", LastName: "Lovelace", AccountNumber: "A1"}
		if err := c.BeforeCreate(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !uuid.IsValid(c.ID) {
			t.Errorf("expected generated uuid, got %q", c.ID)
		}
		if c.KnowledgeExperience != KnowledgeMedium || c.Objective != ObjectiveBalance || c.Risk != RiskMedium {
			t.Errorf("unexpected enum defaults: %q %q %q", c.KnowledgeExperience, c.Objective, c.Risk)
		}
		if c.AnnualReviewDate != NotApplicable || c.FeesCommissionRate != NotApplicable {
			t.Errorf("expected N/A placeholders, got %q %q", c.AnnualReviewDate, c.FeesCommissionRate)
		}
	})

	t.Run("keeps caller id", func(t *testing.T) {
		c := &Client{ID: "c1700000000000"}
		_ = c.BeforeCreate(nil)
		if c.ID != "c1700000000000" {
			t.Errorf("expected id to be kept, got %q", c.ID)
		}
	})
}

func TestTradeBeforeCreate(t *testing.T) {
	tr := &Trade{ClientID: "c1", AssetName: "VWRL", Side: SideSell}
	_ = tr.BeforeCreate(nil)
	if tr.AccountType != TradeAccountISA || tr.AssetType != AssetTypeEquity || tr.AssetRisk != RiskMedium {
		t.Errorf("unexpected defaults: %q %q %q", tr.AccountType, tr.AssetType, tr.AssetRisk)
	}
	if tr.Side != SideSell {
		t.Errorf("expected side Sell to be kept, got %q", tr.Side)
	}
}

func TestSuitabilityLetterBeforeCreate(t *testing.T) {
	l := &SuitabilityLetter{ClientID: "c1"}
	_ = l.BeforeCreate(nil)
	if l.Status != LetterStatusDraft || l.IsFinal() {
		t.Errorf("expected draft status, got %q", l.Status)
	}
}

func TestTableNames(t *testing.T) {
	if (Client{}).TableName() != "clients" || (Trade{}).TableName() != "trades" || (SuitabilityLetter{}).TableName() != "suitability_letters" {
		t.Error("unexpected table names")
	}
}
