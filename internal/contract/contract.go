// Package contract defines the interfaces and shared configuration that
// decouple the fredline command surface from remote APIs and storage backends.
package contract

import (
	"context"
	"errors"

	"github.com/fredline/fredline/schema"
)

// ErrSeriesNotFound is returned by SeriesStore lookups for unknown series IDs.
var ErrSeriesNotFound = errors.New("series not found")

// FredClient defines the remote operations needed to fetch a series.
// This allows the fetch pipeline to be tested without network access.
type FredClient interface {
	// FetchSeriesMetadata returns the raw JSON metadata payload for a series.
	FetchSeriesMetadata(ctx context.Context, seriesID string) (string, error)

	// FetchSeriesObservations returns the raw JSON observations payload for a
	// series. startDate and endDate bound the request when non-empty and use
	// the YYYY-MM-DD format.
	FetchSeriesObservations(ctx context.Context, seriesID, startDate, endDate string) (string, error)
}

// SeriesStore defines persistence operations for fetched series.
// Implementations exist for SQLite, MySQL and PostgreSQL.
type SeriesStore interface {
	// SaveSeries persists a series record, replacing any existing record
	// with the same series ID along with its observations.
	SaveSeries(rec schema.SeriesRecord) error

	// GetSeries loads a full series record. Returns ErrSeriesNotFound when
	// the series is not in the store.
	GetSeries(seriesID string) (schema.SeriesRecord, error)

	// ListSeries returns summaries for all stored series ordered by series ID.
	ListSeries() ([]schema.SeriesSummary, error)

	// DeleteSeries removes a series and its observations. Deleting an
	// unknown series is not an error.
	DeleteSeries(seriesID string) error

	// GetStatus reports backend identity and aggregate counts.
	GetStatus() (schema.StoreStatus, error)

	// Close releases the underlying database handle.
	Close() error
}

// StoreManager provides access to the configured series store.
type StoreManager interface {
	GetSeriesStore() SeriesStore
}
