package module

import (
	catalogdom "newsstand/internal/services/api/catalog/domain"
)

// Ports exposes the catalog module surface other modules may consume
type Ports struct {
	// Feed is the shared working-set view the reader module navigates
	Feed catalogdom.FeedPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
