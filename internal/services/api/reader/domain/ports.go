package domain

import "context"

// Caller identifies the requesting user as mapped from the session headers
type Caller struct {
	UserID string
	Tier   string
}

// ServicePort defines the service contract for reader
type ServicePort interface {
	Access(ctx context.Context, c Caller, itemID string) (AccessResult, error)
	Open(ctx context.Context, c Caller, in OpenInput) (OpenResult, error)
	Navigate(ctx context.Context, c Caller, in NavigateInput) (Position, error)
	Position(ctx context.Context, c Caller) (Position, error)
	Quota(ctx context.Context, c Caller) (QuotaResult, error)
	Complete(ctx context.Context, c Caller, in CompleteInput) (CompleteResult, error)
}
