package outwriter

import (
	"fmt"
	"io"

	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
)

// probeResult is the JSON shape for a nearest-point probe.
type probeResult struct {
	Found bool               `json:"found"`
	Hit   *schema.NearestHit `json:"hit,omitempty"`
}

// PrintNearest outputs a nearest-point probe result, dispatching based on the
// output format configured.
func PrintNearest(hit schema.NearestHit, found bool, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		result := probeResult{Found: found}
		if found {
			result.Hit = &hit
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON probe result")
	}

	if !found {
		fmt.Println("No point within threshold.")
		return nil
	}

	fmtFloat := createFloatFormatter(cfg.Precision)
	fmt.Printf("Nearest point: %s %s = %s at (%s, %s), distance %s\n",
		hit.SeriesID, hit.Date, hit.Value,
		fmtFloat(hit.Position.X), fmtFloat(hit.Position.Y), fmtFloat(hit.Distance))
	return nil
}
