// Package repo provides postgres access for reader state
package repo

import (
	"context"

	"newsstand/internal/core/dates"
	"newsstand/internal/modkit/repokit"
)

// Repo defines the repository contract for reader persistence
// completions and the guest quota are the externally owned collaborator
// stores; feed and navigation state stay in memory
type Repo interface {
	CompletedIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	MarkCompleted(ctx context.Context, userID, itemID string) error

	QuotaUsedOn(ctx context.Context, userID string, day dates.Day) (int, error)
	IncrementQuota(ctx context.Context, userID string, day dates.Day) (int, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) CompletedIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	const sql = `
select item_id
from reader_completions
where user_id = $1
`
	rows, err := r.q.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

func (r *queries) MarkCompleted(ctx context.Context, userID, itemID string) error {
	const sql = `
insert into reader_completions (user_id, item_id)
values ($1, $2)
on conflict (user_id, item_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, userID, itemID)
	return err
}

func (r *queries) QuotaUsedOn(ctx context.Context, userID string, day dates.Day) (int, error) {
	const sql = `
select used
from reader_guest_quota
where user_id = $1 and day = $2::date
`
	rows, err := r.q.Query(ctx, sql, userID, dates.FormatDay(day))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	used := 0
	if rows.Next() {
		if err := rows.Scan(&used); err != nil {
			return 0, err
		}
	}
	return used, rows.Err()
}

func (r *queries) IncrementQuota(ctx context.Context, userID string, day dates.Day) (int, error) {
	const sql = `
insert into reader_guest_quota (user_id, day, used)
values ($1, $2::date, 1)
on conflict (user_id, day)
do update set used = reader_guest_quota.used + 1, updated_at = now()
returning used
`
	var used int
	err := r.q.QueryRow(ctx, sql, userID, dates.FormatDay(day)).Scan(&used)
	return used, err
}
