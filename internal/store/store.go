// Package store persists the unified per-model analysis artifact. The
// pipeline's whole contract with it is Exists / Read / Write keyed by
// canonical model name.
package store

import (
	"context"

	"github.com/revradar/revradar/internal/models"
)

type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Read(ctx context.Context, key string) (*models.ModelAnalysis, error)
	Write(ctx context.Context, key string, analysis *models.ModelAnalysis) error
}
