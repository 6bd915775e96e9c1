// Package munin renders samples and graph metadata in the munin plugin protocol
package munin

import (
	"fmt"
	"io"
	"strings"

	"github.com/R4scal/freebox_exporter/collector"
)

// WriteValues writes one "name.value N" line per sample
func WriteValues(w io.Writer, samples []collector.Sample) error {
	var b strings.Builder
	for _, s := range samples {
		fmt.Fprintf(&b, "%s.value %s\n", s.Name, s.Value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteConfig writes the graph metadata answered to "config"
func WriteConfig(w io.Writer, g collector.Graph) error {
	var b strings.Builder
	line := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s %s\n", key, value)
		}
	}

	line("graph_title", g.Title)
	line("graph_category", g.Category)
	line("graph_args", g.Args)
	line("graph_vlabel", g.VLabel)
	line("graph_info", g.Info)
	for _, f := range g.Fields {
		line(f.Name+".label", f.Label)
		line(f.Name+".info", f.Info)
		line(f.Name+".draw", f.Draw)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
