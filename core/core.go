// Package core has core logic for fetching, charting and exporting series.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredline/fredline/core/chart"
	"github.com/fredline/fredline/core/docview"
	"github.com/fredline/fredline/core/series"
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/internal/importer"
	"github.com/fredline/fredline/internal/iocache"
	"github.com/fredline/fredline/internal/outwriter"
	"github.com/fredline/fredline/internal/parquet"
	"github.com/fredline/fredline/schema"
)

// Device geometry for SVG output and probe hit testing. Probe coordinates
// always address this canonical device space so results do not depend on the
// attached terminal.
const (
	DeviceWidth  = 800
	DeviceHeight = 400
	DeviceMargin = 60
)

// ExecuteFetch fetches each requested series from the FRED API, caches it in
// the session, persists it to the store, and prints its metadata with the
// most recent observations.
func ExecuteFetch(ctx context.Context, cfg *contract.Config, client contract.FredClient, mgr contract.StoreManager, sess *Session) error {
	if len(cfg.SeriesIDs) == 0 {
		return errors.New("at least one series ID is required")
	}
	if cfg.APIKey == "" {
		return errors.New("a FRED API key is required. Set --api-key or FREDLINE_API_KEY")
	}

	ow := outwriter.NewOutWriter()
	for _, id := range cfg.SeriesIDs {
		s, err := fetchOne(ctx, cfg, client, id)
		if err != nil {
			return err
		}

		sess.Put(s)
		if err := saveToStore(mgr, s); err != nil {
			contract.LogWarn(fmt.Sprintf("could not persist %s", id), err)
		}

		if err := ow.WriteSeriesDetail(s.Summary(), s.LatestObservations(cfg.Latest), cfg); err != nil {
			return err
		}
	}
	return nil
}

// fetchOne performs the two-request fetch for a single series and assembles
// the Series from both payloads.
func fetchOne(ctx context.Context, cfg *contract.Config, client contract.FredClient, id string) (*series.Series, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, contract.DefaultFetchTimeout)
	defer cancel()

	metaBody, err := client.FetchSeriesMetadata(fetchCtx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata for %s: %w", id, err)
	}
	obsBody, err := client.FetchSeriesObservations(fetchCtx, id, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch observations for %s: %w", id, err)
	}

	s := series.NewFromJSON(docview.New(metaBody), docview.New(obsBody))
	if s.ObservationCount() == 0 {
		return nil, fmt.Errorf("no observations returned for %s. Check the series ID and date range", id)
	}

	// Payloads without a metadata block still need a usable key
	if s.ID() == "" {
		rec := s.Record()
		rec.SeriesID = id
		if rec.Title == "" {
			rec.Title = id
		}
		s = series.NewFromRecord(rec)
	}
	return s, nil
}

// saveToStore persists a series when storage is configured.
func saveToStore(mgr contract.StoreManager, s *series.Series) error {
	if mgr == nil {
		return nil
	}
	store := mgr.GetSeriesStore()
	if store == nil {
		return nil
	}
	return store.SaveSeries(s.Record())
}

// ExecuteImport loads local CSV or JSON files into the session and the store,
// printing a summary for each.
func ExecuteImport(cfg *contract.Config, mgr contract.StoreManager, sess *Session, files []string) error {
	if len(files) == 0 {
		return errors.New("at least one file is required")
	}

	ow := outwriter.NewOutWriter()
	for _, path := range files {
		s, err := importer.LoadFile(path, "")
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}

		sess.Put(s)
		if err := saveToStore(mgr, s); err != nil {
			contract.LogWarn(fmt.Sprintf("could not persist %s", s.ID()), err)
		}

		if err := ow.WriteSeriesDetail(s.Summary(), s.LatestObservations(cfg.Latest), cfg); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteChart renders the requested series as a terminal chart, optionally
// writing an SVG, probing for the nearest point to a device coordinate, and
// re-rendering whenever a watched import file changes.
func ExecuteChart(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, sess *Session) error {
	if len(cfg.SeriesIDs) == 0 && cfg.ImportFile == "" {
		return errors.New("at least one series ID or --file is required")
	}

	ow := outwriter.NewOutWriter()
	renderOnce := func() error {
		list, err := collectChartSeries(cfg, mgr, sess)
		if err != nil {
			return err
		}

		model := chart.NewModel()
		model.SetSeries(list)

		// Canonical device projection for SVG and probe
		device := chart.NewProjection()
		device.Project(model, DeviceWidth, DeviceHeight, DeviceMargin)

		if cfg.SVGFile != "" {
			if err := ow.WriteSVGChart(device.Render(), cfg); err != nil {
				return err
			}
		}

		terminal := chart.NewProjection()
		terminal.Project(model, outwriter.GetTerminalWidth(cfg), cfg.ChartHeight, cfg.Margin)
		if err := ow.WriteChart(terminal.Render(), cfg); err != nil {
			return err
		}

		if cfg.ProbeSet {
			hit, found := device.FindNearest(cfg.ProbeX, cfg.ProbeY, cfg.Threshold)
			if err := ow.WriteNearest(hit, found, cfg); err != nil {
				return err
			}
		}
		return nil
	}

	if err := renderOnce(); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}
	return importer.WatchFile(ctx, cfg.ImportFile, renderOnce)
}

// collectChartSeries resolves chart inputs: the optional import file first,
// then session entries, then the store.
func collectChartSeries(cfg *contract.Config, mgr contract.StoreManager, sess *Session) ([]*series.Series, error) {
	var list []*series.Series

	if cfg.ImportFile != "" {
		s, err := importer.LoadFile(cfg.ImportFile, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", cfg.ImportFile, err)
		}
		list = append(list, s)
	}

	for _, id := range cfg.SeriesIDs {
		s, err := resolveSeries(id, mgr, sess)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

// resolveSeries looks a series up in the session first, then the store.
func resolveSeries(id string, mgr contract.StoreManager, sess *Session) (*series.Series, error) {
	if s := sess.Get(id); s != nil {
		return s, nil
	}
	if mgr != nil {
		if store := mgr.GetSeriesStore(); store != nil {
			rec, err := store.GetSeries(id)
			if err == nil {
				return series.NewFromRecord(rec), nil
			}
			if !errors.Is(err, contract.ErrSeriesNotFound) {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("series %s is not available. Fetch or import it first", id)
}

// ExecuteSeriesList prints summaries of all stored series.
func ExecuteSeriesList(cfg *contract.Config, mgr contract.StoreManager) error {
	store := requireStore(mgr)
	if store == nil {
		return errors.New("series storage is not configured")
	}
	summaries, err := store.ListSeries()
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeriesList(summaries, cfg)
}

// ExecuteSeriesShow prints one series with its most recent observations.
func ExecuteSeriesShow(cfg *contract.Config, mgr contract.StoreManager, sess *Session, id string) error {
	s, err := resolveSeries(id, mgr, sess)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeriesDetail(s.Summary(), s.LatestObservations(cfg.Latest), cfg)
}

// ExecuteSeriesDelete removes one series from the store.
func ExecuteSeriesDelete(mgr contract.StoreManager, id string) error {
	store := requireStore(mgr)
	if store == nil {
		return errors.New("series storage is not configured")
	}
	if err := store.DeleteSeries(id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}

// ExecuteExport writes full observation rows for the requested series, or all
// stored series when none are named. Parquet output goes through the parquet
// writer; csv and json go through the output dispatcher.
func ExecuteExport(cfg *contract.Config, mgr contract.StoreManager, sess *Session) error {
	records, err := collectExportRecords(cfg, mgr, sess)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("no series found to export")
	}

	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet export")
		}
		rows := parquet.ConvertSeriesRecords(records)
		if err := parquet.WriteObservationsParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Printf("Exported %d observations to: %s\n", len(rows), cfg.OutputFile)
		return nil
	}

	return outwriter.NewOutWriter().WriteObservations(records, cfg)
}

// collectExportRecords gathers the records to export, preferring named series
// and falling back to the whole store.
func collectExportRecords(cfg *contract.Config, mgr contract.StoreManager, sess *Session) ([]schema.SeriesRecord, error) {
	if len(cfg.SeriesIDs) > 0 {
		var records []schema.SeriesRecord
		for _, id := range cfg.SeriesIDs {
			s, err := resolveSeries(id, mgr, sess)
			if err != nil {
				return nil, err
			}
			records = append(records, s.Record())
		}
		return records, nil
	}

	store := requireStore(mgr)
	if store == nil {
		return nil, errors.New("series storage is not configured")
	}
	summaries, err := store.ListSeries()
	if err != nil {
		return nil, err
	}
	var records []schema.SeriesRecord
	for _, summary := range summaries {
		rec, err := store.GetSeries(summary.SeriesID)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// requireStore unwraps the series store from a manager, tolerating nil.
func requireStore(mgr contract.StoreManager) contract.SeriesStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetSeriesStore()
}

// FetchSeries fetches a single series from the API and caches it in the
// session and the store. Exposed for the MCP server, which returns data
// instead of printing it.
func FetchSeries(ctx context.Context, cfg *contract.Config, client contract.FredClient, mgr contract.StoreManager, sess *Session, id string) (*series.Series, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("a FRED API key is required. Set --api-key or FREDLINE_API_KEY")
	}
	s, err := fetchOne(ctx, cfg, client, id)
	if err != nil {
		return nil, err
	}
	sess.Put(s)
	if err := saveToStore(mgr, s); err != nil {
		contract.LogWarn(fmt.Sprintf("could not persist %s", id), err)
	}
	return s, nil
}

// ResolveSeries looks a series up in the session first, then the store.
func ResolveSeries(id string, mgr contract.StoreManager, sess *Session) (*series.Series, error) {
	return resolveSeries(id, mgr, sess)
}

// ProbeNearest projects the requested series onto the canonical device space
// and returns the rendered point nearest to the probe position, if any lies
// within the threshold.
func ProbeNearest(cfg *contract.Config, mgr contract.StoreManager, sess *Session) (schema.NearestHit, bool, error) {
	list, err := collectChartSeries(cfg, mgr, sess)
	if err != nil {
		return schema.NearestHit{}, false, err
	}

	model := chart.NewModel()
	model.SetSeries(list)

	device := chart.NewProjection()
	device.Project(model, DeviceWidth, DeviceHeight, DeviceMargin)

	hit, found := device.FindNearest(cfg.ProbeX, cfg.ProbeY, cfg.Threshold)
	return hit, found, nil
}

// DefaultStoreManager returns the process-wide store manager.
func DefaultStoreManager() contract.StoreManager {
	return iocache.Manager
}
