package schema

import "time"

// StoreStatus holds status information about the series store.
type StoreStatus struct {
	Backend          string    `json:"backend"`
	Connected        bool      `json:"connected"`
	SeriesCount      int       `json:"seriesCount"`
	ObservationCount int       `json:"observationCount"`
	LastSavedTime    time.Time `json:"lastSavedTime"`
	TableSizeBytes   int64     `json:"tableSizeBytes"`
}
