// Package audit writes a structured trail of privileged and identity-changing
// actions (demo toggles, role overrides, staff console operations). Events go
// to stdout as JSON via zap; a persistence hook can mirror them to the
// datastore.
package audit

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType identifies an audited action.
type EventType string

const (
	EventDemoEnabled      EventType = "demo_enabled"
	EventDemoDisabled     EventType = "demo_disabled"
	EventOverrideSet      EventType = "override_set"
	EventOverrideCleared  EventType = "override_cleared"
	EventApplicantAccept  EventType = "applicant_accepted"
	EventConsentRequested EventType = "consent_requested"
	EventConsentDecided   EventType = "consent_decided"
	EventStaffUserDisable EventType = "staff_user_disabled"
	EventStaffJobClosed   EventType = "staff_job_closed"
)

// Event is one audit record.
type Event struct {
	Timestamp   time.Time         `json:"timestamp"`
	Service     string            `json:"service"`
	Environment string            `json:"env"`
	Event       EventType         `json:"event"`
	ActorID     string            `json:"actor_id,omitempty"`
	SubjectID   string            `json:"subject_id,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
}

// Trail writes audit events.
type Trail struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persistFunc func(ctx context.Context, event Event) error
}

var defaultTrail *Trail

// Init builds the default audit trail.
func Init(serviceName string) *Trail {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build()
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	defaultTrail = &Trail{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment(),
	}
	return defaultTrail
}

// Default returns the default trail, initializing a basic one if needed.
func Default() *Trail {
	if defaultTrail == nil {
		return Init("jobbridge-backend")
	}
	return defaultTrail
}

// SetPersistFunc registers a datastore mirror for audit events.
func (t *Trail) SetPersistFunc(f func(ctx context.Context, event Event) error) {
	t.persistFunc = f
}

// Record writes one event.
func (t *Trail) Record(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = t.serviceName
	event.Environment = t.environment

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.SubjectID != "" {
		fields = append(fields, zap.String("subject_id", event.SubjectID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	t.zapLogger.Info(string(event.Event), fields...)

	if t.persistFunc != nil {
		go func(e Event) {
			// Request context might already be canceled
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := t.persistFunc(ctx, e); err != nil {
				t.zapLogger.Error("failed to persist audit event", zap.Error(err))
			}
		}(event)
	}
}

// Sync flushes buffered entries.
func (t *Trail) Sync() error {
	return t.zapLogger.Sync()
}

func environment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
