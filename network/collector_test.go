package network

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollect(t *testing.T) {
	b, err := ioutil.ReadFile("../page/testdata/fbx_info.txt")
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		name  string
		value string
	}{
		{"wan_in", "5"},
		{"wan_out", "-1"},
		{"ethernet_in", "0"},
		{"ethernet_out", "-3"},
		{"usb_in", "0"},
		{"usb_out", "0"},
		{"switch_in", "12"},
		{"switch_out", "-4"},
	}

	samples := NewCollector().Samples(page.Parse(string(b)))
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i, w := range want {
		if samples[i].Name != w.name || samples[i].Value.String() != w.value {
			t.Errorf("sample %d = %s %s, want %s %s", i, samples[i].Name, samples[i].Value, w.name, w.value)
		}
	}
}

func TestReadRates(t *testing.T) {
	tests := []struct {
		name  string
		lines string
		iface string
		in    string
		out   string
	}{
		{"disconnected", "  USB                   Non connecté", "USB", "0", "0"},
		{"connected", "  WAN   Ok   150 ko/s   20 ko/s", "WAN", "150", "-20"},
		{"first line wins", "  WAN   Ok   1 ko/s   2 ko/s\n  WAN   Ok   3 ko/s   4 ko/s", "WAN", "1", "-2"},
		{"missing", "", "Switch", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := ReadRates(page.Parse(tt.lines))
			if len(rates) != len(Interfaces) {
				t.Errorf("got %d interfaces, want %d", len(rates), len(Interfaces))
			}
			r := rates[tt.iface]
			if r.In.String() != tt.in || r.Out.String() != tt.out {
				t.Errorf("%s = %s/%s, want %s/%s", tt.iface, r.In, r.Out, tt.in, tt.out)
			}
		})
	}
}

func TestGraphMatchesSamples(t *testing.T) {
	c := NewCollector()
	fields := c.Graph().Fields
	samples := c.Samples(nil)
	if len(fields) != len(samples) {
		t.Fatalf("graph has %d fields, collector returns %d samples", len(fields), len(samples))
	}
	for i := range fields {
		if fields[i].Name != samples[i].Name {
			t.Errorf("field %d = %s, sample = %s", i, fields[i].Name, samples[i].Name)
		}
	}
}

type ratesOf page.Page

func (ratesOf) Describe(ch chan<- *prometheus.Desc)   { NewCollector().Describe(ch) }
func (r ratesOf) Collect(ch chan<- prometheus.Metric) { NewCollector().Collect(page.Page(r), ch) }

func TestPrometheusMetrics(t *testing.T) {
	p := page.Parse("  WAN   Ok   150 ko/s   20 ko/s\n  USB   Non connecté")

	expected := `
# HELP freebox_network_rate_kilobytes Interface traffic (ko/s)
# TYPE freebox_network_rate_kilobytes gauge
freebox_network_rate_kilobytes{direction="in",interface="Ethernet"} 0
freebox_network_rate_kilobytes{direction="in",interface="Switch"} 0
freebox_network_rate_kilobytes{direction="in",interface="USB"} 0
freebox_network_rate_kilobytes{direction="in",interface="WAN"} 150
freebox_network_rate_kilobytes{direction="out",interface="Ethernet"} 0
freebox_network_rate_kilobytes{direction="out",interface="Switch"} 0
freebox_network_rate_kilobytes{direction="out",interface="USB"} 0
freebox_network_rate_kilobytes{direction="out",interface="WAN"} 20
`
	if err := testutil.CollectAndCompare(ratesOf(p), strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
}
