package sad

import (
	"gonum.org/v1/gonum/stat"
)

// Aggregate summarizes replicate runs of the same configuration.
type Aggregate struct {
	Replicates     int     `json:"replicates"`
	MeanRichness   float64 `json:"mean_richness"`
	StdDevRichness float64 `json:"stddev_richness"`
	MeanShannon    float64 `json:"mean_shannon"`
	StdDevShannon  float64 `json:"stddev_shannon"`
	MeanSingletons float64 `json:"mean_singletons"`
}

// AggregateSummaries computes mean and sample standard deviation across
// replicate summaries. A single replicate has zero standard deviation.
func AggregateSummaries(summaries []Summary) Aggregate {
	agg := Aggregate{Replicates: len(summaries)}
	if len(summaries) == 0 {
		return agg
	}

	richness := make([]float64, len(summaries))
	shannon := make([]float64, len(summaries))
	singletons := make([]float64, len(summaries))
	for i, s := range summaries {
		richness[i] = float64(s.Richness)
		shannon[i] = s.Shannon
		singletons[i] = float64(s.Singletons)
	}

	agg.MeanSingletons = stat.Mean(singletons, nil)
	if len(summaries) == 1 {
		agg.MeanRichness = richness[0]
		agg.MeanShannon = shannon[0]
		return agg
	}
	agg.MeanRichness, agg.StdDevRichness = stat.MeanStdDev(richness, nil)
	agg.MeanShannon, agg.StdDevShannon = stat.MeanStdDev(shannon, nil)
	return agg
}
