package graph

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/PVX/composite"
	"github.com/teranos/PVX/vowel"
)

// Builder converts prime/vowel/composite mappings into a graph structure
type Builder struct {
	verbosity int
	logger    *zap.SugaredLogger
}

// NewBuilder creates a graph builder. A nil logger gets a no-op one.
func NewBuilder(verbosity int, logger *zap.SugaredLogger) *Builder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{
		verbosity: verbosity,
		logger:    logger.Named("graph.builder"),
	}
}

// Build converts an assignment and its composite set into a visualization
// graph. Each prime becomes a node labeled with its vowel; each distinct
// composite value becomes a node; every generator contributes links from
// both operand primes to the composite node, typed by operation.
//
// Output order is deterministic: prime nodes ascend, composite nodes appear
// in first-generation order, links in generation order. Repeated identical
// edges accumulate weight instead of duplicating.
func (b *Builder) Build(assignment *vowel.Assignment, composites *composite.Set, limit int64) *Graph {
	start := time.Now()

	g := &Graph{
		Nodes: []Node{},
		Links: []Link{},
		Meta: Meta{
			GeneratedAt: time.Now(),
			Config: map[string]string{
				"limit":       fmt.Sprintf("%d", limit),
				"description": fmt.Sprintf("Prime vowel graph for limit %d", limit),
			},
		},
	}

	for i, p := range assignment.Primes() {
		label := assignment.Labels()[i]
		g.Nodes = append(g.Nodes, Node{
			ID:      primeNodeID(p),
			Type:    NodeTypePrime,
			Label:   fmt.Sprintf("%d (%s)", p, label),
			Visible: true,
			Group:   1,
			Metadata: map[string]interface{}{
				"value": p,
				"vowel": label,
				"rank":  i,
			},
		})
	}

	// composite node ID -> index in g.Nodes
	seen := make(map[string]int)
	// link key -> index in g.Links
	linkIdx := make(map[string]int)

	for _, c := range composites.All() {
		nodeID := compositeNodeID(c.Value)

		idx, exists := seen[nodeID]
		if !exists {
			idx = len(g.Nodes)
			seen[nodeID] = idx
			g.Nodes = append(g.Nodes, Node{
				ID:      nodeID,
				Type:    NodeTypeComposite,
				Label:   abbreviateValue(c.Value),
				Visible: true,
				Group:   2,
				Metadata: map[string]interface{}{
					"value":  c.Value.String(),
					"labels": []string{},
				},
			})
		}

		// Every generator's label is recorded on the node, collisions
		// included
		node := &g.Nodes[idx]
		node.Metadata["labels"] = append(node.Metadata["labels"].([]string),
			fmt.Sprintf("%s (%s)", c.Label, c.Op))

		for _, operand := range c.Operands {
			key := fmt.Sprintf("%s_%s_%s", primeNodeID(operand), c.Op, nodeID)
			if li, dup := linkIdx[key]; dup {
				g.Links[li].Weight += linkWeightIncrement
				continue
			}
			linkIdx[key] = len(g.Links)
			g.Links = append(g.Links, Link{
				Source: primeNodeID(operand),
				Target: nodeID,
				Type:   string(c.Op),
				Weight: defaultLinkWeight,
				Label:  c.Label,
			})
		}
	}

	g.Meta.Stats.TotalNodes = len(g.Nodes)
	g.Meta.Stats.TotalEdges = len(g.Links)
	g.Meta.NodeTypes = collectNodeTypeInfo(g.Nodes)
	g.Meta.RelationshipTypes = collectRelationshipTypeInfo(g.Links)

	b.logger.Debugw("Built graph",
		"nodes", g.Meta.Stats.TotalNodes,
		"links", g.Meta.Stats.TotalEdges,
		"duration_ms", time.Since(start).Milliseconds())

	return g
}
