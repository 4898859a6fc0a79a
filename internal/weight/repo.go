package weight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitlife/fitlife-backend/internal/datekey"
	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
	"github.com/fitlife/fitlife-backend/pkg"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add upserts the user's weight for the given day. Logging twice on the same
// day keeps the newer value.
func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weight.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	date, err := entry.Date.Time()
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO weight_log
				(user_id, weight, date)
				VALUES ($1, $2, $3)
			ON CONFLICT (user_id, date) DO UPDATE SET weight = EXCLUDED.weight
			RETURNING id;`,
		entry.UserID, entry.Weight, date,
	)
	if err != nil {
		return nil, addErr(err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, addErr(err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, addErr(err)
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("weight.id", id))

	entry.ID = id
	return &entry, nil
}

// addErr maps a foreign key violation on weight_log.user_id to the
// not-found sentinel, everything else passes through.
func addErr(err error) error {
	if pkg.IsForeignKeyViolationError(err) {
		return ErrUserNotFound
	}
	return err
}

// ListForUser returns all of the user's weight logs, oldest first.
func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weight.listForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, weight, date
			FROM weight_log
			WHERE user_id = $1
			ORDER BY date ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var entries []Entry
	for rows.Next() {
		var e Entry
		var date time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.Weight, &date); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		e.Date = datekey.FromTime(date)
		entries = append(entries, e)
	}
	return entries, nil
}

// Delete removes one weight log by ID, scoped to the owning user.
func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weight.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM weight_log WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWeightLogNotFound
	}
	return nil
}
