package system

import (
	"strings"

	"github.com/R4scal/freebox_exporter/collector"
	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	prefix string = "freebox_system_"

	phoneLabel  = "Etat du combiné"
	hungUp      = "Raccroché"
	uptimeLabel = "Temps depuis la mise en route"
)

var (
	connectionUp *prometheus.Desc
	phoneActive  *prometheus.Desc
	uptime       *prometheus.Desc

	rDays    = page.UnitPattern(`jours?`)
	rHours   = page.UnitPattern(`heures?`)
	rMinutes = page.UnitPattern(`minutes?`)
	rSeconds = page.UnitPattern(`secondes?`)
)

func init() {
	connectionUp = prometheus.NewDesc(prefix+"connection_up", "1 when the connection is up", nil, nil)
	phoneActive = prometheus.NewDesc(prefix+"phone_active", "0 when the handset is hung up", nil, nil)
	uptime = prometheus.NewDesc(prefix+"uptime_seconds", "Time since the device was started", nil, nil)
}

// Status is the connection and phone state
type Status struct {
	Connected   bool
	PhoneActive bool
}

// ReadStatus reads the "Etat Ok" and "Etat du combiné" lines.
// An absent connection state reads as disconnected while an absent
// handset state reads as active.
func ReadStatus(p page.Page) Status {
	_, connected := p.Find(func(fields []string) bool {
		return (fields[0] == "Etat" || fields[0] == "État") && page.Field(fields, 2) == "Ok"
	})

	s := Status{Connected: connected, PhoneActive: true}
	if l, ok := p.FindLine(phoneLabel); ok {
		state := strings.TrimSpace(l[strings.Index(l, phoneLabel)+len(phoneLabel):])
		if state == hungUp {
			s.PhoneActive = false
		}
	}
	return s
}

// Uptime is the time elapsed since the device started
type Uptime struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// ReadUptime reads "Temps depuis la mise en route  6 jours, 0 heure, 11 minutes"
func ReadUptime(p page.Page) Uptime {
	l, ok := p.FindLine(uptimeLabel)
	if !ok {
		return Uptime{}
	}
	phrase := l[strings.Index(l, uptimeLabel)+len(uptimeLabel):]
	return Uptime{
		Days:    page.UnitCount(phrase, rDays),
		Hours:   page.UnitCount(phrase, rHours),
		Minutes: page.UnitCount(phrase, rMinutes),
		Seconds: page.UnitCount(phrase, rSeconds),
	}
}

// TotalSeconds returns the uptime in seconds
func (u Uptime) TotalSeconds() int {
	return u.Days*86400 + u.Hours*3600 + u.Minutes*60 + u.Seconds
}

// TotalDays returns the uptime in days, with 2 decimals
func (u Uptime) TotalDays() page.Number {
	return page.Days(u.Days, u.Hours, u.Minutes, u.Seconds)
}

type statusCollector struct{}

// NewStatusCollector creates the status collector
func NewStatusCollector() collector.Collector {
	return &statusCollector{}
}

func (*statusCollector) Name() string {
	return "status"
}

func (*statusCollector) Graph() collector.Graph {
	return collector.Graph{
		Title:    "Connection status",
		Category: collector.Category,
		Args:     "--base 1000 -l 0 -u 1",
		VLabel:   "up (1) / down (0)",
		Info:     "Connection and phone handset state.",
		Fields: []collector.Field{
			{Name: "status", Label: "connection", Info: "1 when the connection is up", Draw: "AREA"},
			{Name: "phone", Label: "phone", Info: "0 when the handset is hung up"},
		},
	}
}

// Describe describes the metrics
func (*statusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- connectionUp
	ch <- phoneActive
}

// Collect collects metrics
func (*statusCollector) Collect(p page.Page, ch chan<- prometheus.Metric) {
	s := ReadStatus(p)
	ch <- prometheus.MustNewConstMetric(connectionUp, prometheus.GaugeValue, page.Bool(s.Connected).Value)
	ch <- prometheus.MustNewConstMetric(phoneActive, prometheus.GaugeValue, page.Bool(s.PhoneActive).Value)
}

// Samples extracts the status and phone samples
func (*statusCollector) Samples(p page.Page) []collector.Sample {
	s := ReadStatus(p)
	return []collector.Sample{
		{Name: "status", Value: page.Bool(s.Connected)},
		{Name: "phone", Value: page.Bool(s.PhoneActive)},
	}
}

type uptimeCollector struct{}

// NewUptimeCollector creates the uptime collector
func NewUptimeCollector() collector.Collector {
	return &uptimeCollector{}
}

func (*uptimeCollector) Name() string {
	return "uptime"
}

func (*uptimeCollector) Graph() collector.Graph {
	return collector.Graph{
		Title:    "Uptime",
		Category: collector.Category,
		Args:     "--base 1000 -l 0",
		VLabel:   "days",
		Info:     "Time since the device was started.",
		Fields: []collector.Field{
			{Name: "uptime", Label: "uptime", Info: "Uptime in days"},
		},
	}
}

// Describe describes the metrics
func (*uptimeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- uptime
}

// Collect collects metrics
func (*uptimeCollector) Collect(p page.Page, ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(uptime, prometheus.GaugeValue, float64(ReadUptime(p).TotalSeconds()))
}

// Samples extracts the uptime sample
func (*uptimeCollector) Samples(p page.Page) []collector.Sample {
	return []collector.Sample{
		{Name: "uptime", Value: ReadUptime(p).TotalDays()},
	}
}
