package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsedash/pulse/pkg/domain"
)

func TestSummarizeTotalsAndTopRegion(t *testing.T) {
	doc := domain.Document{
		PopulationByRegion: map[string]int64{"North": 10, "South": 30},
	}

	s := Summarize(doc)

	assert.Equal(t, int64(40), s.TotalPopulation)
	assert.Equal(t, "South", s.TopRegion)
}

func TestSummarizeAverageIncome(t *testing.T) {
	doc := domain.Document{
		IncomeDistribution: map[string]int64{"0-25k": 2, "25k-50k": 2},
	}

	s := Summarize(doc)

	// (12500*2 + 37500*2) / 4
	assert.InDelta(t, 25000, s.AverageIncome, 1e-9)
}

func TestSummarizeEmptyDocument(t *testing.T) {
	s := Summarize(domain.EmptyDocument())

	assert.Equal(t, int64(0), s.TotalPopulation)
	assert.Zero(t, s.AverageIncome)
	assert.Equal(t, NoTopRegion, s.TopRegion)
}

func TestSummarizeNilCollections(t *testing.T) {
	// Summarize must be total even when normalization was skipped.
	s := Summarize(domain.Document{})

	assert.Equal(t, int64(0), s.TotalPopulation)
	assert.Zero(t, s.AverageIncome)
	assert.Equal(t, NoTopRegion, s.TopRegion)
}

func TestSummarizeUnknownBracketContributesZero(t *testing.T) {
	doc := domain.Document{
		IncomeDistribution: map[string]int64{"0-25k": 1, "definitely-not-a-bracket": 1},
	}

	s := Summarize(doc)

	// (12500*1 + 0*1) / 2
	assert.InDelta(t, 6250, s.AverageIncome, 1e-9)
}

func TestSummarizeAllZeroCounts(t *testing.T) {
	doc := domain.Document{
		IncomeDistribution: map[string]int64{"0-25k": 0, "25k-50k": 0},
	}

	s := Summarize(doc)

	assert.Zero(t, s.AverageIncome)
}

func TestSummarizeTopRegionTieIsDeterministic(t *testing.T) {
	doc := domain.Document{
		PopulationByRegion: map[string]int64{"West": 50, "East": 50, "North": 10},
	}

	first := Summarize(doc)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.TopRegion, Summarize(doc).TopRegion)
	}
	// Sorted key order breaks the tie.
	assert.Equal(t, "East", first.TopRegion)
}

func TestSummarizeIsIdempotentAndPure(t *testing.T) {
	doc := domain.Document{
		PopulationByRegion: map[string]int64{"North": 10, "South": 30},
		IncomeDistribution: map[string]int64{"0-25k": 2, "25k-50k": 2},
		RawEntries:         []json.RawMessage{json.RawMessage(`{"id":1}`)},
	}
	before, err := json.Marshal(doc)
	require.NoError(t, err)

	s1 := Summarize(doc)
	s2 := Summarize(doc)

	assert.Equal(t, s1, s2)

	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "input document must not be mutated")
}

func TestSummarizeWithCustomMidpoints(t *testing.T) {
	doc := domain.Document{
		IncomeDistribution: map[string]int64{"low": 1, "high": 3},
	}

	s := SummarizeWith(doc, map[string]float64{"low": 100, "high": 300})

	// (100*1 + 300*3) / 4
	assert.InDelta(t, 250, s.AverageIncome, 1e-9)
}

func TestSummarizeSingleZeroRegionStillTops(t *testing.T) {
	doc := domain.Document{
		PopulationByRegion: map[string]int64{"Only": 0},
	}

	s := Summarize(doc)

	assert.Equal(t, "Only", s.TopRegion)
	assert.Equal(t, int64(0), s.TotalPopulation)
}
