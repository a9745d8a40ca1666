// Package modkit provides module wiring and shared deps
package modkit

import (
	"newsstand/internal/modkit/repokit"
	"newsstand/internal/platform/config"
	"newsstand/internal/platform/logger"
	"newsstand/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// wiring only, no behavior lives here
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// ZeroOK reports that zero-value deps are usable in tests
// callers still nil check optional stores before use
func (d Deps) ZeroOK() bool { return true }
