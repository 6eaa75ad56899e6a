package aggregate

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func france() model.Record {
	return model.Record{Country: "France", Participations: []model.Participation{
		{Year: 2000, AthleteCount: 100, MedalsCount: 20},
		{Year: 2004, AthleteCount: 120, MedalsCount: 25},
	}}
}

func sample() []model.Record {
	return []model.Record{
		{Country: "Italy", Participations: []model.Participation{
			{Year: 2000, AthleteCount: 90, MedalsCount: 12},
			{Year: 2004, AthleteCount: 95, MedalsCount: 18},
		}},
		{Country: "Japan", Participations: []model.Participation{
			{Year: 2000, AthleteCount: 80, MedalsCount: 9},
			{Year: 2008, AthleteCount: 110, MedalsCount: 30},
		}},
		france(),
	}
}

func TestCountryStatsOf(t *testing.T) {
	Convey("Given a country record", t, func() {
		Convey("Totals are the sums of its participations", func() {
			So(CountryStatsOf(france()), ShouldResemble, CountryStats{TotalEntries: 2, TotalMedals: 45, TotalAthletes: 220})
		})

		Convey("A record without participations is all zeros", func() {
			So(CountryStatsOf(model.Record{Country: "Nowhere"}), ShouldResemble, CountryStats{})
		})

		Convey("Entries match the participation count and medals match the yearly series", func() {
			for _, r := range sample() {
				stats := CountryStatsOf(r)
				So(stats.TotalEntries, ShouldEqual, len(r.Participations))

				sum := 0.0
				for _, v := range YearlyMedalSeries(r).Values {
					sum += v
				}
				So(sum, ShouldEqual, float64(stats.TotalMedals))
			}
		})
	})
}

func TestYearlySeries(t *testing.T) {
	Convey("Given a record supplied out of chronological order", t, func() {
		r := model.Record{Country: "Kenya", Participations: []model.Participation{
			{Year: 2012, AthleteCount: 47, MedalsCount: 11},
			{Year: 2004, AthleteCount: 40, MedalsCount: 7},
			{Year: 2012, AthleteCount: 1, MedalsCount: 1},
		}}

		Convey("The medal series keeps supplied order and duplicates", func() {
			s := YearlyMedalSeries(r)
			So(s.Labels, ShouldResemble, []int{2012, 2004, 2012})
			So(s.Values, ShouldResemble, []float64{11, 7, 1})
			So(s.Len(), ShouldEqual, 3)
			So(s.LabelStrings(), ShouldResemble, []string{"2012", "2004", "2012"})
		})

		Convey("The athlete series pairs the same years with athlete counts", func() {
			s := YearlyAthleteSeries(r)
			So(s.Labels, ShouldResemble, []int{2012, 2004, 2012})
			So(s.Values, ShouldResemble, []float64{47, 40, 1})
		})
	})

	Convey("Given an empty record the series is empty but well-formed", t, func() {
		s := YearlyMedalSeries(model.Record{Country: "Empty"})
		So(s.Labels, ShouldBeEmpty)
		So(len(s.Labels), ShouldEqual, len(s.Values))
	})
}

func TestMedalsPerCountry(t *testing.T) {
	Convey("Given several records", t, func() {
		records := sample()
		s := MedalsPerCountry(records)

		Convey("Labels follow input order and values are medal totals", func() {
			So(len(s.Labels), ShouldEqual, len(s.Values))
			for i, r := range records {
				So(s.Labels[i], ShouldEqual, r.Country)
				So(s.Values[i], ShouldEqual, float64(CountryStatsOf(r).TotalMedals))
			}
			So(s.Values, ShouldResemble, []float64{30, 39, 45})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given records sharing year 2000", t, func() {
		records := []model.Record{
			{Country: "A", Participations: []model.Participation{{Year: 2000}, {Year: 2004}}},
			{Country: "B", Participations: []model.Participation{{Year: 2000}, {Year: 2008}}},
		}

		Convey("Distinct years collapse duplicates", func() {
			So(Summarize(records), ShouldResemble, GlobalSummary{TotalCountries: 2, TotalDistinctYears: 3})
		})

		Convey("The summary ignores record and participation order", func() {
			reversed := []model.Record{
				{Country: "B", Participations: []model.Participation{{Year: 2008}, {Year: 2000}}},
				{Country: "A", Participations: []model.Participation{{Year: 2004}, {Year: 2000}}},
			}
			So(Summarize(reversed), ShouldResemble, Summarize(records))
			So(Summarize(sample()), ShouldResemble, GlobalSummary{TotalCountries: 3, TotalDistinctYears: 3})
		})
	})

	Convey("An empty dataset has zero totals", t, func() {
		So(Summarize(nil), ShouldResemble, GlobalSummary{})
	})
}

func TestFindByCountryName(t *testing.T) {
	Convey("Given a dataset", t, func() {
		records := sample()

		Convey("An exact name is found", func() {
			r, ok := FindByCountryName(records, "Japan")
			So(ok, ShouldBeTrue)
			So(r.Country, ShouldEqual, "Japan")
		})

		Convey("An absent name reports not found without failing", func() {
			r, ok := FindByCountryName(records, "Atlantis")
			So(ok, ShouldBeFalse)
			So(r, ShouldResemble, model.Record{})
		})

		Convey("Matching is case-sensitive", func() {
			_, ok := FindByCountryName(records, "japan")
			So(ok, ShouldBeFalse)
		})
	})
}
