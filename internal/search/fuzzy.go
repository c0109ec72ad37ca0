package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// LineHit is a candidate for jumping to a line by fuzzy text.
type LineHit struct {
	Line     int
	Text     string
	Distance int
}

// FuzzyLines ranks the text lines that fuzzy-match query, best first.
// Matching ignores case.
func FuzzyLines(lines []model.Line, query string) []LineHit {
	if query == "" {
		return nil
	}
	targets := make([]string, 0, len(lines))
	index := make([]int, 0, len(lines))
	for i, l := range lines {
		if l.IsAtomic() || l.Text == "" {
			continue
		}
		targets = append(targets, l.Text)
		index = append(index, i)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	hits := make([]LineHit, 0, len(ranks))
	for _, r := range ranks {
		hits = append(hits, LineHit{
			Line:     index[r.OriginalIndex],
			Text:     r.Target,
			Distance: r.Distance,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Line < hits[j].Line
	})
	return hits
}
