package graph

import (
	"time"
)

// Graph represents the complete graph structure for visualization
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
	Meta  Meta   `json:"meta"`
}

// Node represents a prime or composite value in the graph
type Node struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`  // "prime" or "composite"
	Label    string                 `json:"label"` // Display label
	Visible  bool                   `json:"visible"`
	Group    int                    `json:"group,omitempty"` // For coloring/clustering
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Link represents an operation relating a prime to a derived value
type Link struct {
	Source string  `json:"source"` // Node ID
	Target string  `json:"target"` // Node ID
	Type   string  `json:"type"`   // Operation: "sum", "product", "power"
	Weight float64 `json:"value"`  // Link strength/weight (D3 uses "value")
	Label  string  `json:"label,omitempty"`
}

// Meta contains metadata about the graph
type Meta struct {
	GeneratedAt       time.Time              `json:"generated_at"`
	Stats             Stats                  `json:"stats"`
	Config            map[string]string      `json:"config"`
	NodeTypes         []NodeTypeInfo         `json:"node_types"`
	RelationshipTypes []RelationshipTypeInfo `json:"relationship_types"`
}

// NodeTypeInfo describes a node type and its visual configuration
type NodeTypeInfo struct {
	Type  string `json:"type"`            // "prime" or "composite"
	Label string `json:"label"`           // Human-readable display name
	Color string `json:"color,omitempty"` // Hex color code
	Count int    `json:"count,omitempty"` // Number of nodes of this type
}

// RelationshipTypeInfo describes an operation type with physics and visual configuration
type RelationshipTypeInfo struct {
	Type         string   `json:"type"`                    // Operation name
	Label        string   `json:"label"`                   // Human-readable display name
	Color        string   `json:"color,omitempty"`         // Optional link color override
	LinkDistance *float64 `json:"link_distance,omitempty"` // D3 force distance override (nil = use default)
	LinkStrength *float64 `json:"link_strength,omitempty"` // D3 force strength override (nil = use default)
	Count        int      `json:"count,omitempty"`         // Number of links of this type
}

// Stats provides graph statistics
type Stats struct {
	TotalNodes int `json:"total_nodes,omitempty"`
	TotalEdges int `json:"total_edges,omitempty"`
}
