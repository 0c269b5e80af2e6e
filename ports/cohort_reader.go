package ports

import (
	"burnoutlab/domain/dataset"
)

// CohortReader provides read access to an external cohort file. Implementations
// drop malformed rows rather than failing the whole read.
type CohortReader interface {
	ReadObservations() ([]dataset.Observation, error)
}
