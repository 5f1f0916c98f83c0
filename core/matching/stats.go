package matching

import "gonum.org/v1/gonum/stat"

// ScoreSummary describes the score distribution of one scoring pass.
type ScoreSummary struct {
	Top    float64 `json:"top"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes distribution statistics over the ranked matches.
// An empty pass yields the zero summary.
func Summarize(matches []Match) ScoreSummary {
	if len(matches) == 0 {
		return ScoreSummary{}
	}
	scores := make([]float64, len(matches))
	top := matches[0].Total
	for i, m := range matches {
		scores[i] = m.Total
		if m.Total > top {
			top = m.Total
		}
	}
	mean, std := stat.MeanStdDev(scores, nil)
	if len(matches) == 1 {
		std = 0
	}
	return ScoreSummary{Top: top, Mean: mean, StdDev: std}
}
