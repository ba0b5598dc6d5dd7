package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/field-tools-mcp/internal/contour"
	"github.com/ironsheep/field-tools-mcp/internal/critical"
	"github.com/ironsheep/field-tools-mcp/internal/field"
	"github.com/ironsheep/field-tools-mcp/internal/report"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "field_load", "field_contours").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// rendered is a tool result that is already in its final text form.
type rendered []byte

// errMissingThreshold is returned when a contour or case tool has no threshold.
var errMissingThreshold = errors.New("threshold is required")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	elapsed := time.Since(start)
	s.metrics.observe(params.Name, err, elapsed)
	s.metrics.cacheSize.Set(float64(s.cache.Len()))

	entry := s.log.WithField("tool", params.Name).WithField("elapsed", elapsed)
	if err != nil {
		entry.WithError(err).Warn("tool call failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	entry.Debug("tool call finished")

	text, ok := result.(rendered)
	if !ok {
		b, err := marshalJSON(result)
		if err != nil {
			entry.WithError(err).Warn("tool result not encodable")
			return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
		}
		text = b
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": string(text),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads grids from cache as needed
//  4. Calls the contour or critical analysis
//  5. Renders the result in the requested format
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "field_load":
		return s.handleFieldLoad(args)
	case "field_evict":
		return s.handleFieldEvict(args)
	case "field_contours":
		return s.handleFieldContours(args)
	case "field_critical_points":
		return s.handleFieldCriticalPoints(args)
	case "field_case_index":
		return s.handleFieldCaseIndex(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// marshalJSON converts a value to pretty-printed JSON.
func marshalJSON(v interface{}) (rendered, error) {
	return json.MarshalIndent(v, "", "  ")
}

// unmarshalArgs decodes tool arguments, treating absent arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// loadGrid fetches path from the cache and narrows it to region when given.
func (s *Server) loadGrid(path string, region *field.Region) (*field.Grid, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	g, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return g, nil
	}
	return g.Window(*region)
}

// === Field Handlers ===

type fieldPathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleFieldLoad(args json.RawMessage) (interface{}, error) {
	var a fieldPathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return field.LoadInfo(s.cache, a.Path)
}

func (s *Server) handleFieldEvict(args json.RawMessage) (interface{}, error) {
	var a fieldPathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		s.cache.Clear()
	} else {
		s.cache.Evict(a.Path)
	}
	return map[string]interface{}{"cached": s.cache.Len()}, nil
}

// === Analysis Handlers ===

type fieldContoursArgs struct {
	Path      string        `json:"path"`
	Threshold *float64      `json:"threshold"`
	Region    *field.Region `json:"region"`
	Format    string        `json:"format"`
}

func (s *Server) handleFieldContours(args json.RawMessage) (interface{}, error) {
	var a fieldContoursArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == nil {
		return nil, errMissingThreshold
	}
	format, err := report.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	g, err := s.loadGrid(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	res := contour.Analyze(g, *a.Threshold)
	s.metrics.segments.Add(float64(res.Count))

	out, err := report.Contours(format, res)
	if err != nil {
		return nil, err
	}
	return rendered(out), nil
}

type fieldCriticalArgs struct {
	Path   string        `json:"path"`
	Kind   string        `json:"kind"`
	Region *field.Region `json:"region"`
	Format string        `json:"format"`
}

func (s *Server) handleFieldCriticalPoints(args json.RawMessage) (interface{}, error) {
	var a fieldCriticalArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	var kind critical.Kind
	if a.Kind != "" && a.Kind != "all" {
		k, err := critical.ParseKind(a.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	format, err := report.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	g, err := s.loadGrid(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	res := critical.Analyze(g, kind)
	for _, p := range res.Points {
		s.metrics.points.WithLabelValues(p.Kind.String()).Inc()
	}

	out, err := report.CriticalPoints(format, kind, res)
	if err != nil {
		return nil, err
	}
	return rendered(out), nil
}

type fieldCaseIndexArgs struct {
	Values    []float64 `json:"values"`
	Threshold *float64  `json:"threshold"`
}

// CaseIndexResult describes how a single cell is contoured.
type CaseIndexResult struct {
	CaseIndex int                `json:"case_index"`
	Edges     []contour.EdgePair `json:"edges"`
	Ambiguous bool               `json:"ambiguous"`
}

func (s *Server) handleFieldCaseIndex(args json.RawMessage) (interface{}, error) {
	var a fieldCaseIndexArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Values) != 4 {
		return nil, fmt.Errorf("values must hold 4 corner values (p1..p4), got %d", len(a.Values))
	}
	if a.Threshold == nil {
		return nil, errMissingThreshold
	}

	idx := contour.CaseIndex(a.Values[0], a.Values[1], a.Values[2], a.Values[3], *a.Threshold)
	edges := append([]contour.EdgePair{}, contour.CaseEdges(idx)...)
	return &CaseIndexResult{
		CaseIndex: idx,
		Edges:     edges,
		Ambiguous: idx == 5 || idx == 10,
	}, nil
}
