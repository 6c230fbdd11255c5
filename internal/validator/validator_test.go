package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type tradeForm struct {
	Side      string `validate:"omitempty,trade_side"`
	AssetType string `validate:"omitempty,asset_type"`
	Risk      string `validate:"required,risk_level"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	tests := []struct {
		name    string
		form    tradeForm
		wantErr bool
	}{
		{"valid", tradeForm{Side: "Invest", AssetType: "CFD/SB", Risk: "High"}, false},
		{"empty optional enums", tradeForm{Risk: "Low"}, false},
		{"unknown side", tradeForm{Side: "Short", Risk: "Low"}, true},
		{"lowercase asset type", tradeForm{AssetType: "equity", Risk: "Low"}, true},
		{"missing risk", tradeForm{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLetterStatusValidator(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	if err := v.Var("final", "letter_status"); err != nil {
		t.Errorf("expected final to be valid: %v", err)
	}
	if err := v.Var("sent", "letter_status"); err == nil {
		t.Error("expected sent to be rejected")
	}
}
