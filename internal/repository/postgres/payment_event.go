package postgres

import (
	"context"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

// PaymentEventLog implements payment.EventLog on the payment_events table
type PaymentEventLog struct {
	db *db.DB
}

// NewPaymentEventLog creates a new SQL-backed event log
func NewPaymentEventLog(database *db.DB) payment.EventLog {
	return &PaymentEventLog{db: database}
}

// Seen reports whether reference was already recorded
func (l *PaymentEventLog) Seen(ctx context.Context, reference string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, l.db.Rebind(`SELECT COUNT(*) FROM payment_events WHERE reference = ?`), reference).Scan(&n)
	if err != nil {
		return false, errors.DatabaseError("Failed to look up payment event", err)
	}
	return n > 0, nil
}

// Record stores reference; recording the same reference twice is not an error
func (l *PaymentEventLog) Record(ctx context.Context, reference, eventType, email string) error {
	query := `
		INSERT INTO payment_events (reference, event_type, email, processed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (reference) DO NOTHING
	`
	if _, err := l.db.ExecContext(ctx, l.db.Rebind(query), reference, eventType, email, time.Now().Unix()); err != nil {
		return errors.DatabaseError("Failed to record payment event", err)
	}
	return nil
}
