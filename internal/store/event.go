package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const requestEventsTable = "request_events"

// eventRepo implements EventRepo on the request_events table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	query, args := sqlite.Insert(requestEventsTable).
		Columns("request_id", "activity", "method", "path", "status",
			"latency_ms", "success", "error_message", "created_at").
		Values(data.RequestID, data.Activity, data.Method, data.Path, data.Status,
			data.LatencyMs, data.Success, data.ErrorMessage, time.Now().UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentRequests(ctx context.Context, opts QueryOpts) ([]RequestEvent, error) {
	sel := sqlite.Select("id", "created_at", "request_id", "activity", "method", "path",
		"status", "latency_ms", "success", "error_message").
		From(sqlite.Table(requestEventsTable)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.Activity != "" {
		preds = append(preds, entsql.EQ("activity", opts.Activity))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var events []RequestEvent
	for rows.Next() {
		var (
			ev        RequestEvent
			createdAt int64
		)
		if err := rows.Scan(&ev.ID, &createdAt, &ev.RequestID, &ev.Activity, &ev.Method,
			&ev.Path, &ev.Status, &ev.LatencyMs, &ev.Success, &ev.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(createdAt)
		events = append(events, ev)
	}
	return events, rows.Err()
}
