package analysis

import (
	"fmt"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	domstats "burnoutlab/domain/stats"

	"github.com/montanaflynn/stats"
)

// Describe summarizes a single column: mean, sample standard deviation,
// median, interquartile range, min, max, count.
func Describe(ds *dataset.Dataset, key core.ColumnKey) (domstats.DescriptiveSummary, error) {
	col, err := ds.Column(key)
	if err != nil {
		return domstats.DescriptiveSummary{}, err
	}
	return describeValues(key, col)
}

// DescribeAll summarizes every schema column in canonical order.
func DescribeAll(ds *dataset.Dataset) ([]domstats.DescriptiveSummary, error) {
	keys := dataset.SchemaKeys()
	summaries := make([]domstats.DescriptiveSummary, 0, len(keys))
	for _, key := range keys {
		s, err := Describe(ds, key)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", key, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func describeValues(key core.ColumnKey, values []float64) (domstats.DescriptiveSummary, error) {
	if len(values) == 0 {
		return domstats.DescriptiveSummary{}, fmt.Errorf("%w: %q", core.ErrEmptyColumn, key)
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	// Sample standard deviation with the (n-1) divisor. A single observation
	// has no spread, so n==1 reports 0 instead of failing.
	stdDev := 0.0
	if len(values) > 1 {
		stdDev, _ = stats.StandardDeviationSample(values)
	}

	iqr := 0.0
	if len(values) > 1 {
		q25, _ := stats.Percentile(values, 25)
		q75, _ := stats.Percentile(values, 75)
		iqr = q75 - q25
	}

	return domstats.DescriptiveSummary{
		Column: key,
		Count:  len(values),
		Mean:   mean,
		StdDev: stdDev,
		Median: median,
		IQR:    iqr,
		Min:    min,
		Max:    max,
	}, nil
}
