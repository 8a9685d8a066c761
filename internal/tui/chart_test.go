package tui

import (
	"math"
	"strings"
	"testing"
)

func TestChartEntriesSharesSumToHundred(t *testing.T) {
	dists := []map[string]int64{
		{"a": 1},
		{"North": 10, "South": 30},
		{"x": 7, "y": 13, "z": 1},
		{"a": 1, "b": 1, "c": 1},
	}
	for _, dist := range dists {
		var sum float64
		for _, e := range chartEntries(dist) {
			sum += e.share
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("shares of %v sum to %f, want 100", dist, sum)
		}
	}
}

func TestChartEntriesNilForEmptyOrZero(t *testing.T) {
	if chartEntries(map[string]int64{}) != nil {
		t.Error("empty distribution must yield nil entries")
	}
	if chartEntries(map[string]int64{"a": 0, "b": 0}) != nil {
		t.Error("all-zero distribution must yield nil entries")
	}
}

func TestChartEntriesSortedDescending(t *testing.T) {
	entries := chartEntries(map[string]int64{"small": 1, "big": 10, "mid": 5})

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.label)
	}
	want := []string{"big", "mid", "small"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestChartEntriesTieBreaksByLabel(t *testing.T) {
	entries := chartEntries(map[string]int64{"zeta": 5, "alpha": 5})

	if entries[0].label != "alpha" {
		t.Errorf("tie should order by label, got %q first", entries[0].label)
	}
}

func TestRenderChartPlaceholder(t *testing.T) {
	out := renderChart("income distribution", map[string]int64{}, 60, incomeBarStyle)
	if !strings.Contains(out, "no data") {
		t.Errorf("expected placeholder, got:\n%s", out)
	}

	out = renderChart("income distribution", map[string]int64{"0-25k": 0}, 60, incomeBarStyle)
	if !strings.Contains(out, "no data") {
		t.Errorf("expected placeholder for all-zero, got:\n%s", out)
	}
}

func TestRenderChartShowsEntries(t *testing.T) {
	out := renderChart("population by region", map[string]int64{"North": 10, "South": 30}, 60, populationBarStyle)

	for _, want := range []string{"North", "South", "75.0%", "25.0%", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected chart to contain %q, got:\n%s", want, out)
		}
	}
}

func TestBarLen(t *testing.T) {
	if got := barLen(50, 40); got != 20 {
		t.Errorf("barLen(50, 40) = %d, want 20", got)
	}
	if got := barLen(0.1, 40); got != 1 {
		t.Errorf("tiny nonzero share must render one glyph, got %d", got)
	}
	if got := barLen(100, 40); got != 40 {
		t.Errorf("barLen(100, 40) = %d, want 40", got)
	}
	if got := barLen(0, 40); got != 0 {
		t.Errorf("barLen(0, 40) = %d, want 0", got)
	}
}
