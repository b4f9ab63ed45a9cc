package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PredictionContest_Go/internal/eventlog"
)

// EventLogRepository stores the contest audit trail in the events table
type EventLogRepository struct {
	db *pgxpool.Pool
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// NewEventLogRepository creates the Postgres audit trail store
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

func (r *EventLogRepository) Append(ctx context.Context, entry eventlog.Entry) error {
	payload, err := jsonbOrNull(entry.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodePayload, err)
	}
	if payload == nil {
		payload = []byte("{}")
	}
	metadata, err := jsonbOrNull(entry.Metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodePayload, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO events (event_type, contest_id, payload, metadata)
		VALUES (@event_type, @contest_id::text::uuid, @payload, @metadata)`,
		pgx.NamedArgs{
			"event_type": entry.EventType,
			"contest_id": entry.ContestID,
			"payload":    payload,
			"metadata":   metadata,
		})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgAppendEvent, err)
	}
	return nil
}

// List filters on whichever Query fields are set
func (r *EventLogRepository) List(ctx context.Context, q eventlog.Query) ([]eventlog.Entry, error) {
	where := []string{"TRUE"}
	args := pgx.NamedArgs{}

	if q.ContestID != nil {
		where = append(where, "contest_id = @contest_id::text::uuid")
		args["contest_id"] = *q.ContestID
	}
	if q.EventType != nil {
		where = append(where, "event_type = @event_type")
		args["event_type"] = *q.EventType
	}
	if q.Since != nil {
		where = append(where, "created_at >= @since")
		args["since"] = *q.Since
	}
	if q.Until != nil {
		where = append(where, "created_at <= @until")
		args["until"] = *q.Until
	}

	sql := `
		SELECT id, event_type, contest_id::text, payload, metadata, created_at
		FROM events
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC, id DESC`
	if q.Limit > 0 {
		sql += " LIMIT @limit"
		args["limit"] = q.Limit
	}

	rows, err := r.db.Query(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListEvents, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[eventlog.Entry])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListEvents, err)
	}
	return entries, nil
}

func (r *EventLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgPruneEvents, err)
	}
	return tag.RowsAffected(), nil
}
