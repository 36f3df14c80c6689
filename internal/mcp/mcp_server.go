// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Fredline MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.FredClient, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Fredline Series Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
		sess:    core.NewSession(),
	}

	// --- 1. Tool: fetch_series ---
	s.AddTool(mcp.NewTool("fetch_series",
		mcp.WithDescription("Fetch an economic time series from the FRED API and cache it locally."),
		mcp.WithString("series_id", mcp.Description("The FRED series ID (e.g. GDP, UNRATE, CPIAUCSL)."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Start date in YYYY-MM-DD format (defaults to unbounded).")),
		mcp.WithString("end", mcp.Description("End date in YYYY-MM-DD format (defaults to unbounded).")),
	), h.handleFetchSeries)

	// --- 2. Tool: list_series ---
	s.AddTool(mcp.NewTool("list_series",
		mcp.WithDescription("List all series stored locally, with observation counts and date ranges."),
	), h.handleListSeries)

	// --- 3. Tool: get_series ---
	s.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("Return a cached series with its metadata and most recent observations."),
		mcp.WithString("series_id", mcp.Description("The FRED series ID."), mcp.Required()),
		mcp.WithNumber("latest", mcp.Description("Number of most recent observations to include.")),
	), h.handleGetSeries)

	// --- 4. Tool: nearest_point ---
	s.AddTool(mcp.NewTool("nearest_point",
		mcp.WithDescription("Project cached series onto an 800x400 chart and find the data point nearest to a device coordinate."),
		mcp.WithString("series_ids", mcp.Description("Comma-separated series IDs to chart."), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Probe X coordinate in device space."), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Probe Y coordinate in device space."), mcp.Required()),
		mcp.WithNumber("threshold", mcp.Description("Maximum hit distance in device units. Defaults to 15.")),
	), h.handleNearestPoint)

	return s
}

// StartMCPServer starts the Fredline MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.FredClient, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
