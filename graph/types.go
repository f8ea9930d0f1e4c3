package graph

import "sort"

// Static type registry. Unlike entity graphs where types arrive with the
// data, PVX has exactly two node types and three operations, so the display
// metadata is declared here.

var nodeTypeDefs = map[string]NodeTypeInfo{
	NodeTypePrime:     {Type: NodeTypePrime, Label: "Prime", Color: "#83a598"},
	NodeTypeComposite: {Type: NodeTypeComposite, Label: "Composite", Color: "#fe8019"},
}

func floatPtr(f float64) *float64 { return &f }

var relationshipTypeDefs = map[string]RelationshipTypeInfo{
	"sum":     {Type: "sum", Label: "Sum", Color: "#b8bb26", LinkDistance: floatPtr(60)},
	"product": {Type: "product", Label: "Product", Color: "#fabd2f", LinkDistance: floatPtr(80)},
	"power":   {Type: "power", Label: "Power", Color: "#d3869b", LinkDistance: floatPtr(120), LinkStrength: floatPtr(0.3)},
}

// collectNodeTypeInfo returns display metadata with counts for the node
// types present in the graph, primes first.
func collectNodeTypeInfo(nodes []Node) []NodeTypeInfo {
	counts := make(map[string]int)
	for _, n := range nodes {
		counts[n.Type]++
	}

	var infos []NodeTypeInfo
	for _, t := range []string{NodeTypePrime, NodeTypeComposite} {
		if counts[t] == 0 {
			continue
		}
		info := nodeTypeDefs[t]
		info.Count = counts[t]
		infos = append(infos, info)
	}
	return infos
}

// collectRelationshipTypeInfo returns display metadata with counts for the
// operations present in the graph, most common first.
func collectRelationshipTypeInfo(links []Link) []RelationshipTypeInfo {
	counts := make(map[string]int)
	for _, l := range links {
		counts[l.Type]++
	}

	var infos []RelationshipTypeInfo
	for t, count := range counts {
		info, ok := relationshipTypeDefs[t]
		if !ok {
			info = RelationshipTypeInfo{Type: t, Label: t}
		}
		info.Count = count
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Count != infos[j].Count {
			return infos[i].Count > infos[j].Count
		}
		return infos[i].Type < infos[j].Type
	})
	return infos
}
