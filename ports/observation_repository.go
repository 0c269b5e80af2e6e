package ports

import (
	"context"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
)

// ObservationRepository defines the interface for observation storage
type ObservationRepository interface {
	Save(ctx context.Context, obs dataset.Observation) error
	SaveBatch(ctx context.Context, observations []dataset.Observation) error
	GetByID(ctx context.Context, id core.RecordID) (*dataset.Observation, error)
	List(ctx context.Context, limit, offset int) ([]dataset.Observation, error)
	ListAll(ctx context.Context) ([]dataset.Observation, error)
	Count(ctx context.Context) (int, error)
}
