// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord marks a dataset entry that breaks the record invariants.
var ErrInvalidRecord = errors.New("invalid record")

// Participation is one country's result for a single Olympic edition.
type Participation struct {
	Year         int `json:"year"`
	AthleteCount int `json:"athleteCount"`
	MedalsCount  int `json:"medalsCount"`
}

// Record is one country's full participation history. Participations keep
// the order in which they were supplied.
type Record struct {
	Country        string          `json:"country"`
	Participations []Participation `json:"participations"`
}

// Validate checks a dataset: non-empty unique country names and
// non-negative counts.
func Validate(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Country) == "" {
			return fmt.Errorf("%w: record %d has no country", ErrInvalidRecord, i)
		}
		if _, dup := seen[r.Country]; dup {
			return fmt.Errorf("%w: duplicate country %q", ErrInvalidRecord, r.Country)
		}
		seen[r.Country] = struct{}{}
		for _, p := range r.Participations {
			if p.AthleteCount < 0 || p.MedalsCount < 0 {
				return fmt.Errorf("%w: %s %d has negative counts", ErrInvalidRecord, r.Country, p.Year)
			}
		}
	}
	return nil
}
