package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to a CSV file (x,y,S rows after a header) or a heightmap image",
}

var regionProperty = map[string]interface{}{
	"type":        "object",
	"description": "Optional half-open sub-grid: rows [row1,row2), columns [col1,col2)",
	"properties": map[string]interface{}{
		"row1": map[string]interface{}{"type": "integer"},
		"col1": map[string]interface{}{"type": "integer"},
		"row2": map[string]interface{}{"type": "integer"},
		"col2": map[string]interface{}{"type": "integer"},
	},
	"required": []string{"row1", "col1", "row2", "col2"},
}

var formatProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"json", "text", "geojson"},
	"description": "Output format (default: json)",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "field_load",
			Description: "Load a scalar field and return its grid size, axis extents, value range and mean. The grid is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "field_evict",
			Description: "Drop a cached field so the next call re-reads the file. Without a path, the whole cache is cleared.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
			},
		},
		{
			Name:        "field_contours",
			Description: "Trace iso-contour line segments at a threshold using Marching Squares. A vertex is inside when its value is strictly greater than the threshold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Iso-value to contour",
					},
					"region": regionProperty,
					"format": formatProperty,
				},
				"required": []string{"path", "threshold"},
			},
		},
		{
			Name:        "field_critical_points",
			Description: "Find local minima, local maxima and saddle points among interior grid vertices by comparing each with its 8 neighbours.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"kind": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"all", "local_minimum", "local_maximum", "saddle_point"},
						"description": "Only return points of this kind (default: all)",
					},
					"region": regionProperty,
					"format": formatProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "field_case_index",
			Description: "Compute the Marching Squares case index (0-15) for one cell and the edge pairs it connects. Corners are p1 (bottom-left), p2 (bottom-right), p3 (top-right), p4 (top-left).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"values": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"minItems":    4,
						"maxItems":    4,
						"description": "Corner values [v1, v2, v3, v4]",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Iso-value",
					},
				},
				"required": []string{"values", "threshold"},
			},
		},
	}
}

// knownTool reports whether name is one of GetToolDefinitions.
func knownTool(name string) bool {
	for _, t := range GetToolDefinitions() {
		if t.Name == name {
			return true
		}
	}
	return false
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
