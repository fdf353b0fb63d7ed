package pipeline

import (
	"context"

	"github.com/couchcryptid/hurdat2-etl/internal/domain"
)

// ObservationTransformer implements Transformer using the domain
// normalization and enrichment functions.
type ObservationTransformer struct{}

// NewTransformer creates an ObservationTransformer.
func NewTransformer() *ObservationTransformer {
	return &ObservationTransformer{}
}

func (t *ObservationTransformer) Transform(_ context.Context, raw domain.RawObservation) (domain.Observation, error) {
	obs, err := domain.ParseObservation(raw)
	if err != nil {
		return domain.Observation{}, err
	}
	return domain.EnrichObservation(obs), nil
}
