// Package render writes the graph as a self-contained HTML page with a
// D3 force layout. The page carries the full graph document inline, so
// the file works offline apart from the d3 script itself.
package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"os"

	"github.com/teranos/PVX/errors"
	"github.com/teranos/PVX/graph"
)

//go:embed viz.html
var vizTemplate string

// pageData is the template payload for the embedded visualization page
type pageData struct {
	GraphJSON template.JS
}

// HTML renders the visualization page for a graph
func HTML(g *graph.Graph) ([]byte, error) {
	if g == nil {
		return nil, errors.New("cannot render nil graph")
	}

	data, err := json.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal graph")
	}

	tmpl, err := template.New("viz").Parse(vizTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse visualization template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{GraphJSON: template.JS(data)}); err != nil {
		return nil, errors.Wrap(err, "failed to execute visualization template")
	}

	return buf.Bytes(), nil
}

// WriteHTML renders a graph and writes the page to path
func WriteHTML(g *graph.Graph, path string) error {
	page, err := HTML(g)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, page, 0644); err != nil {
		return errors.Wrapf(err, "failed to write visualization to %s", path)
	}

	return nil
}
