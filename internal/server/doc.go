// Package server implements the MCP (Model Context Protocol) server for scalar
// field analysis tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - field_load: Load a field and get its extents and value statistics
//   - field_evict: Drop cached fields
//   - field_contours: Marching Squares iso-contour segments
//   - field_critical_points: Local minima, maxima and saddle points
//   - field_case_index: Case index and edges for a single cell
//
// The analysis tools accept an optional region and a format of json (the
// default), text or geojson.
//
// # Field Caching
//
// Loaded grids are cached by path and reused across tool calls. Cached grids
// are never modified, so concurrent analyses may share them. field_evict
// forces a re-read.
//
// # Metrics
//
// Every tools/call is counted by tool and outcome and timed. The collectors
// live in the registry returned by Server.Registry; the command exposes it
// over HTTP when a metrics address is configured.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.Options{Logger: log})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
