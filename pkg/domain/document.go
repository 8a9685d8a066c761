package domain

import "encoding/json"

// Document is the dashboard document stored at the well-known path in the
// remote store. Every push notification replaces the whole snapshot; fields
// are never merged individually.
type Document struct {
	PopulationByRegion map[string]int64  `json:"populationByRegion"`
	IncomeDistribution map[string]int64  `json:"incomeDistribution"`
	RawEntries         []json.RawMessage `json:"rawEntries"`
}

// EmptyDocument is the canonical body emitted when the remote document does
// not exist, so consumers never operate on a missing input.
func EmptyDocument() Document {
	return Document{
		PopulationByRegion: map[string]int64{},
		IncomeDistribution: map[string]int64{},
		RawEntries:         []json.RawMessage{},
	}
}

// Normalize replaces absent collections with empty ones. Store snapshots are
// normalized immediately on receipt so nil maps never reach derivation code.
func (d *Document) Normalize() {
	if d.PopulationByRegion == nil {
		d.PopulationByRegion = map[string]int64{}
	}
	if d.IncomeDistribution == nil {
		d.IncomeDistribution = map[string]int64{}
	}
	if d.RawEntries == nil {
		d.RawEntries = []json.RawMessage{}
	}
}
