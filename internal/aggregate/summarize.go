// Package aggregate derives dashboard roll-ups from document snapshots.
// Everything here is pure: no I/O, no mutation of inputs.
package aggregate

import (
	"maps"
	"slices"

	"github.com/pulsedash/pulse/pkg/domain"
)

// NoTopRegion is the sentinel rendered when there is no population data.
const NoTopRegion = "N/A"

// DefaultBracketMidpoints assigns each known income bracket a representative
// midpoint value. Binned counts are approximated by their midpoints, and the
// open top bracket by a flat representative value. Callers that want a
// different income model pass their own table to SummarizeWith.
var DefaultBracketMidpoints = map[string]float64{
	"0-25k":    12500,
	"25k-50k":  37500,
	"50k-75k":  62500,
	"75k-100k": 87500,
	"100k+":    125000,
}

// Summary is the derived roll-up shown on the dashboard. It has no identity
// or lifecycle of its own; it is recomputed from each document snapshot.
type Summary struct {
	TotalPopulation int64
	AverageIncome   float64
	TopRegion       string
}

// Summarize derives a Summary from doc using the default midpoint table.
func Summarize(doc domain.Document) Summary {
	return SummarizeWith(doc, DefaultBracketMidpoints)
}

// SummarizeWith derives a Summary from doc using the supplied midpoint
// table. Brackets absent from the table contribute a midpoint of 0. The
// function is total: any document, including one with nil collections,
// yields a Summary, and doc is never mutated.
func SummarizeWith(doc domain.Document, midpoints map[string]float64) Summary {
	s := Summary{TopRegion: NoTopRegion}

	for _, count := range doc.PopulationByRegion {
		s.TotalPopulation += count
	}

	var weighted, total float64
	for bracket, count := range doc.IncomeDistribution {
		weighted += midpoints[bracket] * float64(count)
		total += float64(count)
	}
	if total > 0 {
		s.AverageIncome = weighted / total
	}

	// Map iteration order is unstable in Go, so "first entry wins on ties"
	// is pinned to sorted key order to keep the result deterministic.
	var best int64
	for _, region := range slices.Sorted(maps.Keys(doc.PopulationByRegion)) {
		if count := doc.PopulationByRegion[region]; s.TopRegion == NoTopRegion || count > best {
			best = count
			s.TopRegion = region
		}
	}

	return s
}
