package adsl

import (
	"github.com/R4scal/freebox_exporter/collector"
	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	prefix string = "freebox_adsl_"

	// kb/s on the page, reported in the unit of the rate graphs
	atmScale = 1024
)

var (
	atmRate     *prometheus.Desc
	attenuation *prometheus.Desc
	snrMargin   *prometheus.Desc
	fecErrors   *prometheus.Desc
	hecErrors   *prometheus.Desc
	crcErrors   *prometheus.Desc
)

func init() {
	l := []string{"direction"}

	atmRate = prometheus.NewDesc(prefix+"atm_rate", "ATM bandwidth (bits per second)", l, nil)
	attenuation = prometheus.NewDesc(prefix+"attenuation_db", "Line attenuation (dB)", l, nil)
	snrMargin = prometheus.NewDesc(prefix+"snr_margin_db", "Signal to noise ratio margin (dB)", l, nil)
	fecErrors = prometheus.NewDesc(prefix+"fec_errors_total", "Forward error correction count", l, nil)
	hecErrors = prometheus.NewDesc(prefix+"hec_errors_total", "Header error control count", l, nil)
	crcErrors = prometheus.NewDesc(prefix+"crc_errors_total", "Cyclic redundancy check error count", l, nil)
}

// Directional is a downstream/upstream pair of the ADSL statistics table
type Directional struct {
	Down page.Number
	Up   page.Number
}

// ATM reads the ATM bandwidth: "Débit ATM 16353 kb/s 1136 kb/s"
func ATM(p page.Page) Directional {
	d := read(p, page.SecondIs("ATM"), 3, 5)
	return Directional{Down: d.Down.Scale(atmScale), Up: d.Up.Scale(atmScale)}
}

// Attenuation reads the line attenuation: "Atténuation 34.00 dB 18.90 dB"
func Attenuation(p page.Page) Directional {
	return read(p, page.FirstIs("Atténuation", "Attenuation"), 2, 4)
}

// SNR reads the noise margin: "Marge de bruit 6.20 dB 6.50 dB"
func SNR(p page.Page) Directional {
	return read(p, page.FirstIs("Marge"), 4, 6)
}

// FEC reads the forward error correction counters
func FEC(p page.Page) Directional {
	return read(p, page.FirstIs("FEC"), 2, 3)
}

// HEC reads the header error control counters
func HEC(p page.Page) Directional {
	return read(p, page.FirstIs("HEC"), 2, 3)
}

// CRC reads the cyclic redundancy check error counters
func CRC(p page.Page) Directional {
	return read(p, page.FirstIs("CRC"), 2, 3)
}

func read(p page.Page, match func([]string) bool, down, up int) Directional {
	fields, ok := p.Find(match)
	if !ok {
		return Directional{}
	}
	return Directional{
		Down: page.ParseNumber(page.Field(fields, down)),
		Up:   page.ParseNumber(page.Field(fields, up)),
	}
}

type adslCollector struct {
	name      string
	graph     collector.Graph
	read      func(page.Page) Directional
	desc      *prometheus.Desc
	valueType prometheus.ValueType
}

// Samples extracts the down and up samples
func (c *adslCollector) Samples(p page.Page) []collector.Sample {
	d := c.read(p)
	return []collector.Sample{
		{Name: c.graph.Fields[0].Name, Value: d.Down},
		{Name: c.graph.Fields[1].Name, Value: d.Up},
	}
}

// Describe describes the metrics
func (c *adslCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect collects metrics
func (c *adslCollector) Collect(p page.Page, ch chan<- prometheus.Metric) {
	d := c.read(p)
	ch <- prometheus.MustNewConstMetric(c.desc, c.valueType, d.Down.Value, "down")
	ch <- prometheus.MustNewConstMetric(c.desc, c.valueType, d.Up.Value, "up")
}

func (c *adslCollector) Name() string {
	return c.name
}

func (c *adslCollector) Graph() collector.Graph {
	return c.graph
}

func newCollector(name string, g collector.Graph, read func(page.Page) Directional, desc *prometheus.Desc, t prometheus.ValueType) collector.Collector {
	return &adslCollector{
		name:      name,
		graph:     g,
		read:      read,
		desc:      desc,
		valueType: t,
	}
}

// NewATMCollector creates the atm collector
func NewATMCollector() collector.Collector {
	g := collector.DirectionalGraph("atm", "ATM bandwidth", "bits per second", "ATM synchronisation rate of the ADSL line.")
	g.Args = "--base 1024 -l 0"
	return newCollector("atm", g, ATM, atmRate, prometheus.GaugeValue)
}

// NewAttenuationCollector creates the attenuation collector
func NewAttenuationCollector() collector.Collector {
	g := collector.DirectionalGraph("attenuation", "Line attenuation", "dB", "Attenuation of the ADSL line.")
	return newCollector("attenuation", g, Attenuation, attenuation, prometheus.GaugeValue)
}

// NewSNRCollector creates the snr collector
func NewSNRCollector() collector.Collector {
	g := collector.DirectionalGraph("snr", "SNR margin", "dB", "Signal to noise ratio margin of the ADSL line.")
	return newCollector("snr", g, SNR, snrMargin, prometheus.GaugeValue)
}

// NewFECCollector creates the fec collector
func NewFECCollector() collector.Collector {
	g := collector.DirectionalGraph("fec", "FEC errors", "errors", "Forward error correction count.")
	return newCollector("fec", g, FEC, fecErrors, prometheus.CounterValue)
}

// NewHECCollector creates the hec collector
func NewHECCollector() collector.Collector {
	g := collector.DirectionalGraph("hec", "HEC errors", "errors", "Header error control count.")
	return newCollector("hec", g, HEC, hecErrors, prometheus.CounterValue)
}

// NewCRCCollector creates the crc collector
func NewCRCCollector() collector.Collector {
	g := collector.DirectionalGraph("crc", "CRC errors", "errors", "Cyclic redundancy check error count.")
	return newCollector("crc", g, CRC, crcErrors, prometheus.CounterValue)
}
