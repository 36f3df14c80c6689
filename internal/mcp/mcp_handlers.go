package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers. The session
// carries series fetched earlier in the same MCP session, so nearest_point
// can probe without re-fetching.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.FredClient
	mgr     contract.StoreManager
	sess    *core.Session
}

func (h *toolHandler) handleFetchSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.ToUpper(strings.TrimSpace(request.GetString("series_id", "")))
	if id == "" {
		return mcp.NewToolResultError("series_id is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if s := request.GetString("start", ""); s != "" {
		cfg.StartDate = s
	}
	if e := request.GetString("end", ""); e != "" {
		cfg.EndDate = e
	}
	if err := contract.RevalidateDateRange(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date range: %v", err)), nil
	}

	s, err := core.FetchSeries(ctx, cfg, h.client, h.mgr, h.sess, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(s.Summary(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListSeries(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("series storage is not configured"), nil
	}
	store := h.mgr.GetSeriesStore()
	if store == nil {
		return mcp.NewToolResultError("series storage is not configured"), nil
	}

	summaries, err := store.ListSeries()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.ToUpper(strings.TrimSpace(request.GetString("series_id", "")))
	if id == "" {
		return mcp.NewToolResultError("series_id is required"), nil
	}

	latest := request.GetInt("latest", contract.DefaultLatest)
	if latest <= 0 || latest > contract.MaxLatest {
		return mcp.NewToolResultError(fmt.Sprintf("latest must be between 1 and %d", contract.MaxLatest)), nil
	}

	s, err := core.ResolveSeries(id, h.mgr, h.sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := struct {
		Summary schema.SeriesSummary `json:"summary"`
		Latest  []schema.Observation `json:"latest"`
	}{
		Summary: s.Summary(),
		Latest:  s.LatestObservations(latest),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleNearestPoint(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.SeriesIDs = nil
	for _, raw := range strings.Split(request.GetString("series_ids", ""), ",") {
		if id := strings.ToUpper(strings.TrimSpace(raw)); id != "" {
			cfg.SeriesIDs = append(cfg.SeriesIDs, id)
		}
	}
	if len(cfg.SeriesIDs) == 0 {
		return mcp.NewToolResultError("series_ids is required"), nil
	}
	if len(cfg.SeriesIDs) > schema.MaxActiveSeries {
		return mcp.NewToolResultError(fmt.Sprintf("at most %d series can be probed at once", schema.MaxActiveSeries)), nil
	}

	cfg.ProbeSet = true
	cfg.ProbeX = request.GetFloat("x", 0)
	cfg.ProbeY = request.GetFloat("y", 0)
	if t := request.GetFloat("threshold", 0); t > 0 {
		cfg.Threshold = t
	}

	hit, found, err := core.ProbeNearest(cfg, h.mgr, h.sess)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("probe failed: %v", err)), nil
	}

	payload := struct {
		Found bool               `json:"found"`
		Hit   *schema.NearestHit `json:"hit,omitempty"`
	}{Found: found}
	if found {
		payload.Hit = &hit
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
