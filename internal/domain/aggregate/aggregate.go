// Package aggregate derives summary numbers and chart-ready series from
// participation records. Every function is pure and allocates its result.
package aggregate

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
)

// CountryStats holds totals over one record's participations.
type CountryStats struct {
	TotalEntries  int `json:"totalEntries"`
	TotalMedals   int `json:"totalMedals"`
	TotalAthletes int `json:"totalAthletes"`
}

// GlobalSummary holds totals across the whole dataset.
type GlobalSummary struct {
	TotalCountries     int `json:"totalCountries"`
	TotalDistinctYears int `json:"totalDistinctYears"`
}

// ChartSeries pairs labels with values by position.
type ChartSeries[L any] struct {
	Labels []L       `json:"labels"`
	Values []float64 `json:"values"`
}

// Len returns the number of points.
func (s ChartSeries[L]) Len() int { return len(s.Labels) }

// LabelStrings formats every label for display.
func (s ChartSeries[L]) LabelStrings() []string {
	out := make([]string, len(s.Labels))
	for i, l := range s.Labels {
		out[i] = fmt.Sprint(l)
	}
	return out
}

// CountryStatsOf computes the totals for a record. A record without
// participations yields all zeros.
func CountryStatsOf(r model.Record) CountryStats {
	stats := CountryStats{TotalEntries: len(r.Participations)}
	for _, p := range r.Participations {
		stats.TotalMedals += p.MedalsCount
		stats.TotalAthletes += p.AthleteCount
	}
	return stats
}

// YearlyMedalSeries maps each participation year to its medal count in the
// order supplied. Years are neither sorted nor deduplicated.
func YearlyMedalSeries(r model.Record) ChartSeries[int] {
	return yearly(r, func(p model.Participation) int { return p.MedalsCount })
}

// YearlyAthleteSeries maps each participation year to its athlete count in
// the order supplied.
func YearlyAthleteSeries(r model.Record) ChartSeries[int] {
	return yearly(r, func(p model.Participation) int { return p.AthleteCount })
}

func yearly(r model.Record, value func(model.Participation) int) ChartSeries[int] {
	s := ChartSeries[int]{
		Labels: make([]int, len(r.Participations)),
		Values: make([]float64, len(r.Participations)),
	}
	for i, p := range r.Participations {
		s.Labels[i] = p.Year
		s.Values[i] = float64(value(p))
	}
	return s
}

// MedalsPerCountry returns each country's medal total in input order.
func MedalsPerCountry(records []model.Record) ChartSeries[string] {
	s := ChartSeries[string]{
		Labels: make([]string, len(records)),
		Values: make([]float64, len(records)),
	}
	for i, r := range records {
		s.Labels[i] = r.Country
		s.Values[i] = float64(CountryStatsOf(r).TotalMedals)
	}
	return s
}

// Summarize counts the countries and the distinct Olympic years found in
// any record.
func Summarize(records []model.Record) GlobalSummary {
	years := make(map[int]struct{})
	for _, r := range records {
		for _, p := range r.Participations {
			years[p.Year] = struct{}{}
		}
	}
	return GlobalSummary{
		TotalCountries:     len(records),
		TotalDistinctYears: len(years),
	}
}

// FindByCountryName looks up a record by exact, case-sensitive country name.
func FindByCountryName(records []model.Record, name string) (model.Record, bool) {
	for _, r := range records {
		if r.Country == name {
			return r, true
		}
	}
	return model.Record{}, false
}
