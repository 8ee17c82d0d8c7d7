package analysis

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// fetchFunc is one upstream fetch attempt.
type fetchFunc func(ctx context.Context) (models.Series, error)

// fetchWithDefault invokes op and absorbs any failure into def. A single
// degraded series must not abort the aggregated request; the degradation
// is visible downstream as the default value.
func (s *Service) fetchWithDefault(ctx context.Context, name string, op fetchFunc, def models.Series) models.Series {
	series, err := op(ctx)
	if err != nil {
		s.logger.Warn().Str("series", name).Err(err).Msg("Fetch degraded to default")
		return def
	}
	if series == nil {
		return def
	}
	return series
}

// ttmThenAnnual invokes ttmOp and falls through to annualOp when the TTM
// leg fails OR succeeds with an empty result. This is a single fallback
// hop: an error from the annual leg propagates, and only then.
func (s *Service) ttmThenAnnual(ctx context.Context, name string, ttmOp, annualOp fetchFunc) (models.Series, error) {
	series, err := ttmOp(ctx)
	if err == nil && !series.Empty() {
		return series, nil
	}
	if err != nil {
		s.logger.Debug().Str("series", name).Err(err).Msg("TTM leg failed, falling back to annual")
	}
	return annualOp(ctx)
}

// optionalCall dispatches a named capability from the registry. An absent
// entry and a failed call are the same case: an empty series.
func (s *Service) optionalCall(ctx context.Context, name string, req CapabilityRequest) models.Series {
	capFn, ok := s.registry[name]
	if !ok {
		return models.EmptySeries()
	}
	series, err := capFn(ctx, req)
	if err != nil {
		s.logger.Debug().Str("capability", name).Err(err).Msg("Optional call failed")
		return models.EmptySeries()
	}
	if series == nil {
		return models.EmptySeries()
	}
	return series
}
