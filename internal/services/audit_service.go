package services

import (
	"context"

	"go.uber.org/zap"

	"vincowealth/internal/logger"
)

type requestIDKey struct{}

// WithRequestID returns a context carrying the command's request id, which
// audit records include.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// auditService writes audit records to the structured log.
type auditService struct {
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer. A nil logger uses the global one.
func NewAuditService(log *zap.SugaredLogger) AuditServicer {
	if log == nil {
		return &auditService{log: logger.Named("audit")}
	}
	return &auditService{log: log.Named("audit")}
}

// Log records an audit event. It never fails the calling operation.
func (s *auditService) Log(ctx context.Context, action, resourceType, resourceID string, changes map[string]any) {
	fields := []any{
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
	}
	if id := RequestID(ctx); id != "" {
		fields = append(fields, "request_id", id)
	}
	if len(changes) > 0 {
		fields = append(fields, "changes", changes)
	}
	s.log.Infow("audit", fields...)
}

// auditOrNop returns a, or an audit service discarding all records.
func auditOrNop(a AuditServicer) AuditServicer {
	if a == nil {
		return NewAuditService(zap.NewNop().Sugar())
	}
	return a
}
