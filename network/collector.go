package network

import (
	"strings"

	"github.com/R4scal/freebox_exporter/collector"
	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	prefix   string = "freebox_network_"
	rateUnit string = "ko/s"
)

var (
	// Interfaces lists the interfaces of the rates table, in output order
	Interfaces = []string{"WAN", "Ethernet", "USB", "Switch"}

	rate *prometheus.Desc
)

func init() {
	l := []string{"interface", "direction"}

	rate = prometheus.NewDesc(prefix+"rate_kilobytes", "Interface traffic (ko/s)", l, nil)
}

// Rate is the traffic of an interface in ko/s. Out is negative so that
// outbound traffic is drawn below the axis.
type Rate struct {
	In  page.Number
	Out page.Number
}

// ReadRates reads "WAN  Ok  5 ko/s  1 ko/s" lines. Interfaces without
// a rate, like "USB  Non connecté", are reported at 0.
func ReadRates(p page.Page) map[string]Rate {
	rates := make(map[string]Rate, len(Interfaces))
	for _, iface := range Interfaces {
		rates[iface] = Rate{}
	}
	seen := make(map[string]bool, len(Interfaces))
	for _, l := range p {
		fields := strings.Fields(l)
		if len(fields) == 0 || !strings.Contains(l, rateUnit) {
			continue
		}
		if _, ok := rates[fields[0]]; !ok || seen[fields[0]] {
			continue
		}
		seen[fields[0]] = true
		rates[fields[0]] = Rate{
			In:  page.ParseNumber(page.Field(fields, 3)),
			Out: page.ParseNumber(page.Field(fields, 5)).Neg(),
		}
	}
	return rates
}

type ratesCollector struct{}

// NewCollector creates the rates collector
func NewCollector() collector.Collector {
	return &ratesCollector{}
}

func (*ratesCollector) Name() string {
	return "rates"
}

func (*ratesCollector) Graph() collector.Graph {
	g := collector.Graph{
		Title:    "Interface rates",
		Category: collector.Category,
		Args:     "--base 1000",
		VLabel:   "ko/s in (+) / out (-)",
		Info:     "Traffic of the network interfaces. Outbound traffic is drawn below the axis.",
	}
	for _, iface := range Interfaces {
		name := strings.ToLower(iface)
		g.Fields = append(g.Fields,
			collector.Field{Name: name + "_in", Label: iface + " in", Info: "Inbound traffic on " + iface},
			collector.Field{Name: name + "_out", Label: iface + " out", Info: "Outbound traffic on " + iface},
		)
	}
	return g
}

// Describe describes the metrics
func (*ratesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- rate
}

// Collect collects metrics, outbound traffic is reported positive
func (*ratesCollector) Collect(p page.Page, ch chan<- prometheus.Metric) {
	rates := ReadRates(p)
	for _, iface := range Interfaces {
		r := rates[iface]
		ch <- prometheus.MustNewConstMetric(rate, prometheus.GaugeValue, r.In.Value, iface, "in")
		ch <- prometheus.MustNewConstMetric(rate, prometheus.GaugeValue, r.Out.Neg().Value, iface, "out")
	}
}

// Samples extracts an in and out sample per interface
func (*ratesCollector) Samples(p page.Page) []collector.Sample {
	rates := ReadRates(p)
	samples := make([]collector.Sample, 0, 2*len(Interfaces))
	for _, iface := range Interfaces {
		name := strings.ToLower(iface)
		r := rates[iface]
		samples = append(samples,
			collector.Sample{Name: name + "_in", Value: r.In},
			collector.Sample{Name: name + "_out", Value: r.Out},
		)
	}
	return samples
}
