package iocache

import (
	"fmt"

	"github.com/fredline/fredline/schema"
)

// PrintStoreStatus prints series store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Series: %d\n", status.SeriesCount)
	fmt.Printf("Observations: %d\n", status.ObservationCount)
	if status.SeriesCount > 0 {
		fmt.Printf("Last Saved: %s\n", status.LastSavedTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}
