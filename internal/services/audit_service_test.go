package services

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"vincowealth/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := NewAuditService(zap.New(core).Sugar())

	ctx := WithRequestID(context.Background(), "req-1")
	store := testutil.SetupTestDB(t)
	svc := NewClientService(store, audit)

	_, err := svc.CreateClient(ctx, newClient("c1", "Ada", "Lovelace"))
	testutil.AssertNoError(t, err)

	entries := logs.FilterMessage("audit").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["action"] != "create" || fields["resource_type"] != "client" || fields["resource_id"] != "c1" {
		t.Errorf("unexpected audit fields: %v", fields)
	}
	if fields["request_id"] != "req-1" {
		t.Errorf("expected request id req-1, got %v", fields["request_id"])
	}
}

func TestAuditNotWrittenOnFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := NewAuditService(zap.New(core).Sugar())

	store := testutil.SetupTestDB(t)
	svc := NewTradeService(store, audit)

	_, err := svc.CreateTrade(context.Background(), nil)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
	if n := logs.FilterMessage("audit").Len(); n != 0 {
		t.Errorf("expected no audit entries, got %d", n)
	}
}
