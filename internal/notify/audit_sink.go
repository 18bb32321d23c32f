package notify

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

// AuditSink records every event in the audit_logs table.
type AuditSink struct {
	db *gorm.DB
}

func NewAuditSink(db *gorm.DB) *AuditSink {
	return &AuditSink{db: db}
}

func (s *AuditSink) Name() string { return "audit" }

func (s *AuditSink) Send(ctx context.Context, ev Event) error {
	return s.db.WithContext(ctx).Create(auditRecord(ev)).Error
}

func auditRecord(ev Event) *models.AuditLog {
	var metaJSON string
	meta := map[string]any{
		"barber_id":   ev.BarberID,
		"customer_id": ev.CustomerID,
		"start":       ev.Start,
	}
	if ev.Type == StatusChanged {
		meta["from"] = ev.FromStatus
		meta["to"] = ev.ToStatus
	}
	if b, err := json.Marshal(meta); err == nil {
		metaJSON = string(b)
	}

	rec := &models.AuditLog{
		BarbershopID: ev.BarbershopID,
		ActorRole:    ev.ActorRole,
		EventID:      ev.ID,
		Action:       string(ev.Type),
		Entity:       "appointment",
		Metadata:     metaJSON,
		CreatedAt:    ev.OccurredAt,
	}
	if ev.ActorID != 0 {
		id := ev.ActorID
		rec.ActorID = &id
	}
	if ev.AppointmentID != 0 {
		id := ev.AppointmentID
		rec.EntityID = &id
	}
	return rec
}
