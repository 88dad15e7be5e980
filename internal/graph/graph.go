package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is an opaque graph node. Group is an optional namespace label;
// the layout engine only ever sees it as a partition key.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
}

// Edge is a directed dependency between two nodes. The layout engine
// treats it as an undirected spring regardless of direction.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is the post-filter node/edge set handed to the layout engine.
// Groups, when present, overrides the per-node Group labels.
type Graph struct {
	Nodes  []Node              `json:"nodes" yaml:"nodes"`
	Edges  []Edge              `json:"edges" yaml:"edges"`
	Groups map[string][]string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Load reads a graph from a YAML or JSON file, chosen by extension.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := &Graph{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, g)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, g)
	default:
		return nil, fmt.Errorf("unsupported graph format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// NamespaceGroups returns the explicit Groups map when set, otherwise a
// partition derived from the per-node Group labels. Ungrouped nodes are
// left out entirely.
func (g *Graph) NamespaceGroups() map[string][]string {
	if g.Groups != nil {
		return g.Groups
	}
	groups := make(map[string][]string)
	for _, n := range g.Nodes {
		if n.Group != "" {
			groups[n.Group] = append(groups[n.Group], n.ID)
		}
	}
	if len(groups) == 0 {
		return nil
	}
	return groups
}
