package module

import (
	"context"

	readerdom "newsstand/internal/services/api/reader/domain"
	readersvc "newsstand/internal/services/api/reader/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptReaderPort exposes service methods as module ports for cross-module usage
type adaptReaderPort struct{ svc readersvc.Service }

// Access implements the domain ServicePort surface other modules may consume
func (a adaptReaderPort) Access(
	ctx context.Context, c readerdom.Caller, itemID string,
) (readerdom.AccessResult, error) {
	return a.svc.Access(ctx, c, itemID)
}

// Quota implements the domain ServicePort surface other modules may consume
func (a adaptReaderPort) Quota(ctx context.Context, c readerdom.Caller) (readerdom.QuotaResult, error) {
	return a.svc.Quota(ctx, c)
}
