// Package leads provides the lead pipeline bounded context.
// This file defines the public API of the leads bounded context.
// Only types and interfaces defined here should be imported by other domains.
package leads

import (
	"context"
)

// NextBestActionRefresher recomputes time-dependent recommendations for open
// leads. The background scheduler depends on this interface, not on the
// concrete service.
type NextBestActionRefresher interface {
	RefreshNextBestActions(ctx context.Context) (int, error)
}
