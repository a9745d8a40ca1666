// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "newsstand/internal/platform/net/http"
)

// Module is the minimal contract used by modkit
// kept as a sibling so a module can export its own ports type without import knots
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
