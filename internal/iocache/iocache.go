// Package iocache is for durable storage of fetched series.
package iocache

import (
	"sync"

	"github.com/fredline/fredline/internal/contract"
)

// SeriesStoreManager manages the configured SeriesStore instance.
type SeriesStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	series       contract.SeriesStore
}

var _ contract.StoreManager = &SeriesStoreManager{} // Compile-time check

// GetSeriesStore returns the series store.
func (mgr *SeriesStoreManager) GetSeriesStore() contract.SeriesStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.series
}
