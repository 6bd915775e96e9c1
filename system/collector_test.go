package system

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/R4scal/freebox_exporter/collector"
	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type pageCollector struct {
	c collector.Collector
	p page.Page
}

func (pc pageCollector) Describe(ch chan<- *prometheus.Desc) { pc.c.Describe(ch) }
func (pc pageCollector) Collect(ch chan<- prometheus.Metric) { pc.c.Collect(pc.p, ch) }

func testPage(t *testing.T) page.Page {
	t.Helper()
	b, err := ioutil.ReadFile("../page/testdata/fbx_info.txt")
	if err != nil {
		t.Fatal(err)
	}
	return page.Parse(string(b))
}

func TestReadStatus(t *testing.T) {
	tests := []struct {
		name string
		page page.Page
		want Status
	}{
		{"status page", testPage(t), Status{Connected: true, PhoneActive: false}},
		{"empty page", nil, Status{Connected: false, PhoneActive: true}},
		{"off hook", page.Parse("  Etat  Ok\n  Etat du combiné   Décroché"), Status{Connected: true, PhoneActive: true}},
		{"empty handset state", page.Parse("  Etat du combiné"), Status{PhoneActive: true}},
		{"connection down", page.Parse("  Etat  Ko\n  Etat du combiné   Raccroché"), Status{}},
		{"accented label", page.Parse("  État  Ok"), Status{Connected: true, PhoneActive: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadStatus(tt.page); got != tt.want {
				t.Errorf("ReadStatus() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatusCollector(t *testing.T) {
	c := NewStatusCollector()

	samples := c.Samples(nil)
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].Name != "status" || samples[0].Value.String() != "0" {
		t.Errorf("status sample = %s %s, want status 0", samples[0].Name, samples[0].Value)
	}
	if samples[1].Name != "phone" || samples[1].Value.String() != "1" {
		t.Errorf("phone sample = %s %s, want phone 1", samples[1].Name, samples[1].Value)
	}

	samples = c.Samples(testPage(t))
	if samples[0].Value.String() != "1" || samples[1].Value.String() != "0" {
		t.Errorf("samples = %v, want status 1 and phone 0", samples)
	}
}

func TestReadUptime(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Uptime
		days string
	}{
		{"no seconds", "Temps depuis la mise en route  6 jours, 0 heure, 11 minutes", Uptime{6, 0, 11, 0}, "6.01"},
		{"singular units", "Temps depuis la mise en route  1 jour, 1 heure, 1 minute, 1 seconde", Uptime{1, 1, 1, 1}, "1.04"},
		{"minutes only", "Temps depuis la mise en route  42 minutes", Uptime{Minutes: 42}, "0.03"},
		{"missing", "Modèle  Freebox ADSL", Uptime{}, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ReadUptime(page.Parse(tt.line))
			if u != tt.want {
				t.Errorf("ReadUptime() = %+v, want %+v", u, tt.want)
			}
			if got := u.TotalDays().String(); got != tt.days {
				t.Errorf("TotalDays() = %s, want %s", got, tt.days)
			}
		})
	}
}

func TestUptimeCollector(t *testing.T) {
	samples := NewUptimeCollector().Samples(testPage(t))
	if len(samples) != 1 || samples[0].Name != "uptime" || samples[0].Value.String() != "6.01" {
		t.Errorf("Samples() = %v, want uptime 6.01", samples)
	}
}

func TestPrometheusMetrics(t *testing.T) {
	p := testPage(t)

	expected := `
# HELP freebox_system_connection_up 1 when the connection is up
# TYPE freebox_system_connection_up gauge
freebox_system_connection_up 1
# HELP freebox_system_phone_active 0 when the handset is hung up
# TYPE freebox_system_phone_active gauge
freebox_system_phone_active 0
`
	if err := testutil.CollectAndCompare(pageCollector{NewStatusCollector(), p}, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}

	expected = `
# HELP freebox_system_uptime_seconds Time since the device was started
# TYPE freebox_system_uptime_seconds gauge
freebox_system_uptime_seconds 519060
`
	if err := testutil.CollectAndCompare(pageCollector{NewUptimeCollector(), p}, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
}

func TestReadUptimeAllUnits(t *testing.T) {
	u := ReadUptime(page.Parse("Temps depuis la mise en route  2 jours, 3 heures, 4 minutes, 5 secondes"))
	if u != (Uptime{2, 3, 4, 5}) {
		t.Errorf("ReadUptime() = %+v", u)
	}
	if got := u.TotalSeconds(); got != 2*86400+3*3600+4*60+5 {
		t.Errorf("TotalSeconds() = %d", got)
	}
}
