package collector

import (
	"errors"

	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrUnknownFamily is returned when a metric family name matches no collector
var ErrUnknownFamily = errors.New("unknown metric family")

// Collector extracts the samples of one metric family from the status page
type Collector interface {

	// Name returns the family name, as found in the plugin name
	Name() string

	// Graph describes the munin graph drawn from the samples
	Graph() Graph

	// Samples extracts the munin samples. Every field of Graph is returned,
	// missing values are reported as their default.
	Samples(p page.Page) []Sample

	// Describe describes the Prometheus metrics
	Describe(ch chan<- *prometheus.Desc)

	// Collect collects the Prometheus metrics from the status page
	Collect(p page.Page, ch chan<- prometheus.Metric)
}

// Sample is a named value read from the status page
type Sample struct {
	Name  string
	Value page.Number
}

// Graph holds the static graph metadata of a family
type Graph struct {
	Title    string
	Category string
	Args     string
	VLabel   string
	Info     string
	Fields   []Field
}

// Field describes one data source of a graph
type Field struct {
	Name  string
	Label string
	Info  string
	Draw  string
}
