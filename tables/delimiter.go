package tables

import (
	"math"

	"github.com/tsawler/paleotext/model"
)

var (
	strictCandidates = []model.Delimiter{
		model.DelimiterTab,
		model.DelimiterMultiSpace,
		model.DelimiterSingleSpace,
	}
	lenientCandidates = []model.Delimiter{
		model.DelimiterTab,
		model.DelimiterMultiSpace,
	}
)

// ChooseDelimiter picks the best column delimiter for a block from its
// aggregate statistics.
//
// In strict mode a delimiter qualifies only when it splits every line
// into the same number of columns (CV of 0) and more than one column;
// candidates are tried in order tab, multi-space, single-space. In
// lenient mode only tab and multi-space are considered and the lowest
// CV wins even when imperfect, with ties going to tab.
//
// Returns DelimiterNone when no candidate qualifies.
func ChooseDelimiter(stats model.BlockStats, strict bool) model.Delimiter {
	if strict {
		for _, d := range strictCandidates {
			if stats.ForDelimiter(d).Regular() {
				return d
			}
		}
		return model.DelimiterNone
	}

	best := model.DelimiterNone
	bestCV := math.Inf(1)
	for _, d := range lenientCandidates {
		ds := stats.ForDelimiter(d)
		if ds.Mode > 1 && ds.CV < bestCV {
			best = d
			bestCV = ds.CV
		}
	}
	return best
}
