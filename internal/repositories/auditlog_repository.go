// internal/repositories/auditlog_repository.go
// AuditLogEntry data access layer, backed by MongoDB the way the teacher's
// AnalyticsService backs analytics_events — a queue fed by Append and
// flushed in batches by FlushPending, rather than a single-row insert per
// call, so a burst of adjustments during a round doesn't hammer the
// collection.

package repositories

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tournament-planner/internal/models"
)

// AuditLogRepository queues and batches audit trail entries into MongoDB.
type AuditLogRepository struct {
	db     *mongo.Database
	logger *log.Logger

	mu      sync.Mutex
	pending []models.AuditLogEntry
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(db *mongo.Database, logger *log.Logger) *AuditLogRepository {
	return &AuditLogRepository{db: db, logger: logger}
}

// Append queues an entry for the next batch flush. It never returns an
// error to the caller: a dropped audit line must not block a TO's action,
// mirroring the teacher's "analytics shouldn't break the app" stance.
func (r *AuditLogRepository) Append(entry models.AuditLogEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.mu.Lock()
	r.pending = append(r.pending, entry)
	r.mu.Unlock()
}

// FlushPending writes every queued entry to the audit_log collection in one
// batch and clears the queue. Intended to be called on a ticker every
// config.LogBatchMinutes by the server's background loop.
func (r *AuditLogRepository) FlushPending(ctx context.Context) error {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	docs := make([]interface{}, len(batch))
	for i, e := range batch {
		docs[i] = bson.M{
			"id":         e.ID,
			"event_id":   e.EventID,
			"kind":       e.Kind,
			"summary":    e.Summary,
			"detail":     e.Detail,
			"created_at": e.CreatedAt,
		}
	}

	_, err := r.db.Collection("audit_log").InsertMany(ctx, docs)
	if err != nil {
		r.logger.Printf("audit log flush failed, re-queuing %d entries: %v", len(batch), err)
		r.mu.Lock()
		r.pending = append(batch, r.pending...)
		r.mu.Unlock()
	}
	return err
}

// ListByEvent returns an event's audit trail, most recent first.
func (r *AuditLogRepository) ListByEvent(ctx context.Context, eventID string, limit int64) ([]models.AuditLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.db.Collection("audit_log").Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.AuditLogEntry
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
