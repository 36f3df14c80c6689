// Package series models a named economic time series as an ordered, immutable
// sequence of dated observations plus free-form metadata. A Series is built
// once, from either a pair of fetched JSON payloads or an adapter-supplied
// record, and replaced wholesale on re-fetch rather than mutated.
package series

import (
	"time"

	"github.com/fredline/fredline/core/docview"
	"github.com/fredline/fredline/schema"
)

// Series holds metadata and observations for one time series. All metadata
// fields are free-form strings with no semantic validation, and observation
// values stay raw strings; numeric parsing is deferred to the chart model
// because non-numeric missing-data markers are expected input.
type Series struct {
	id           string
	title        string
	frequency    string
	units        string
	lastUpdated  string
	observations []schema.Observation
	createdAt    int64
}

// NewFromJSON constructs a Series from the two payloads a remote fetch
// produces: a series-list view and an observations-list view. Metadata comes
// from the first element of the "seriess" array; an empty metadata array
// degrades to empty-string fields rather than failing.
func NewFromJSON(meta, obs docview.View) *Series {
	md := docview.New("{}")
	if list := meta.GetArray("seriess"); len(list) > 0 {
		md = list[0]
	}

	rows := obs.GetArray("observations")
	observations := make([]schema.Observation, 0, len(rows))
	for _, row := range rows {
		observations = append(observations, schema.Observation{
			Date:  row.GetString("date"),
			Value: row.GetString("value"),
		})
	}

	return &Series{
		id:           md.GetString("id"),
		title:        md.GetString("title"),
		frequency:    md.GetString("frequency"),
		units:        md.GetString("units"),
		lastUpdated:  md.GetString("last_updated"),
		observations: observations,
		createdAt:    time.Now().Unix(),
	}
}

// NewFromRecord constructs a Series from the shared adapter shape used by
// imports and store hydration. The observation slice is copied so later
// changes to the record cannot reach the Series.
func NewFromRecord(rec schema.SeriesRecord) *Series {
	observations := make([]schema.Observation, len(rec.Observations))
	copy(observations, rec.Observations)

	createdAt := rec.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	return &Series{
		id:           rec.SeriesID,
		title:        rec.Title,
		frequency:    rec.Frequency,
		units:        rec.Units,
		lastUpdated:  rec.LastUpdated,
		observations: observations,
		createdAt:    createdAt,
	}
}

// ID returns the stable series key.
func (s *Series) ID() string { return s.id }

// Title returns the series title.
func (s *Series) Title() string { return s.title }

// Frequency returns the frequency label.
func (s *Series) Frequency() string { return s.frequency }

// Units returns the unit label.
func (s *Series) Units() string { return s.units }

// LastUpdated returns the upstream last-updated stamp.
func (s *Series) LastUpdated() string { return s.lastUpdated }

// CreatedAt returns the Unix time this Series entered the session.
func (s *Series) CreatedAt() int64 { return s.createdAt }

// ObservationCount returns the number of observations.
func (s *Series) ObservationCount() int { return len(s.observations) }

// FirstDate returns the date of the earliest observation, or "" when empty.
func (s *Series) FirstDate() string {
	if len(s.observations) == 0 {
		return ""
	}
	return s.observations[0].Date
}

// LastDate returns the date of the most recent observation, or "" when empty.
func (s *Series) LastDate() string {
	if len(s.observations) == 0 {
		return ""
	}
	return s.observations[len(s.observations)-1].Date
}

// Observation returns the observation at position i in chronological order.
func (s *Series) Observation(i int) schema.Observation {
	return s.observations[i]
}

// AllObservations returns a copy of the observations in chronological order.
func (s *Series) AllObservations() []schema.Observation {
	out := make([]schema.Observation, len(s.observations))
	copy(out, s.observations)
	return out
}

// LatestObservations returns up to n most recent observations in reverse
// chronological order. A series with fewer than n observations yields all of
// them, still newest first. The backing sequence is never mutated.
func (s *Series) LatestObservations(n int) []schema.Observation {
	if n < 0 {
		n = 0
	}
	start := len(s.observations) - n
	if start < 0 {
		start = 0
	}
	out := make([]schema.Observation, 0, len(s.observations)-start)
	for i := len(s.observations) - 1; i >= start; i-- {
		out = append(out, s.observations[i])
	}
	return out
}

// Record converts the Series back to the shared adapter shape, for
// persistence and export.
func (s *Series) Record() schema.SeriesRecord {
	return schema.SeriesRecord{
		SeriesID:     s.id,
		Title:        s.title,
		Frequency:    s.frequency,
		Units:        s.units,
		LastUpdated:  s.lastUpdated,
		Observations: s.AllObservations(),
		CreatedAt:    s.createdAt,
	}
}

// Summary derives the listing row for this Series. Derived values are computed
// on demand; nothing is cached because the observation list is immutable.
func (s *Series) Summary() schema.SeriesSummary {
	return schema.SeriesSummary{
		SeriesID:         s.id,
		Title:            s.title,
		Frequency:        s.frequency,
		Units:            s.units,
		LastUpdated:      s.lastUpdated,
		ObservationCount: s.ObservationCount(),
		FirstDate:        s.FirstDate(),
		LastDate:         s.LastDate(),
	}
}
