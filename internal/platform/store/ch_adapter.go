package store

import (
	"context"

	chx "newsstand/internal/platform/store/ch"
)

// chAdapter wraps chx.CH and implements Clickhouse + Pinger
type chAdapter struct {
	c *chx.CH
}

func newCHAdapter(c *chx.CH) *chAdapter { return &chAdapter{c: c} }

func (a *chAdapter) Ping(ctx context.Context) error { return a.c.Ping(ctx) }

func (a *chAdapter) Insert(ctx context.Context, table string, columns []string, data [][]any) error {
	return a.c.Insert(ctx, table, columns, data)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r: rs}, nil
}

func (a *chAdapter) Close() error { return a.c.Close() }

// chRows narrows chx.Rows Close signature to the store.Rows seam
type chRows struct{ r chx.Rows }

func (x chRows) Next() bool            { return x.r.Next() }
func (x chRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x chRows) Err() error            { return x.r.Err() }
func (x chRows) Close()                { _ = x.r.Close() }
func (x chRows) Columns() []string     { return x.r.Columns() }
