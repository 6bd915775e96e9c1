package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/R4scal/freebox_exporter/adsl"
	"github.com/R4scal/freebox_exporter/collector"
	"github.com/R4scal/freebox_exporter/network"
	"github.com/R4scal/freebox_exporter/page"
	"github.com/R4scal/freebox_exporter/system"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/log"
)

const prefix = "freebox_"

var (
	scrapeCollectorDurationDesc *prometheus.Desc
	scrapeDurationDesc          *prometheus.Desc
	upDesc                      *prometheus.Desc
)

func init() {
	upDesc = prometheus.NewDesc(prefix+"up", "Scrape of the status page was successful", nil, nil)
	scrapeDurationDesc = prometheus.NewDesc(prefix+"scrape_duration_seconds", "Duration of a scrape of the status page", nil, nil)
	scrapeCollectorDurationDesc = prometheus.NewDesc(prefix+"collect_duration_seconds", "Duration of the extraction by collector", []string{"collector"}, nil)
}

// collectors returns one collector per metric family
func collectors() []collector.Collector {
	return []collector.Collector{
		system.NewStatusCollector(),
		system.NewUptimeCollector(),
		adsl.NewATMCollector(),
		adsl.NewAttenuationCollector(),
		adsl.NewSNRCollector(),
		adsl.NewFECCollector(),
		adsl.NewHECCollector(),
		adsl.NewCRCCollector(),
		network.NewCollector(),
	}
}

func familyNames() []string {
	cols := collectors()
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name())
	}
	return names
}

func lookup(family string) (collector.Collector, error) {
	for _, c := range collectors() {
		if c.Name() == family {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", collector.ErrUnknownFamily, family)
}

// selectCollectors returns the collectors of families, or all of them when empty
func selectCollectors(families []string) ([]collector.Collector, error) {
	if len(families) == 0 {
		return collectors(), nil
	}
	cols := make([]collector.Collector, 0, len(families))
	for _, f := range families {
		c, err := lookup(f)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func unknownFamilyMessage() string {
	names := familyNames()
	return "ERROR : Monitor can only be " + strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

type freeboxCollector struct {
	ctx        context.Context
	fetcher    *page.Fetcher
	collectors []collector.Collector
}

func newFreeboxCollector(ctx context.Context, fetcher *page.Fetcher, cols []collector.Collector) *freeboxCollector {
	return &freeboxCollector{
		ctx:        ctx,
		fetcher:    fetcher,
		collectors: cols,
	}
}

// Describe implements prometheus.Collector interface
func (c *freeboxCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- scrapeCollectorDurationDesc

	for _, col := range c.collectors {
		col.Describe(ch)
	}
}

// Collect implements prometheus.Collector interface
func (c *freeboxCollector) Collect(ch chan<- prometheus.Metric) {
	t := time.Now()
	defer func() {
		ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(t).Seconds())
	}()

	p, err := c.fetcher.Fetch(c.ctx)
	if err != nil {
		log.Errorln(err)
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 0)
		return
	}

	for _, col := range c.collectors {
		ct := time.Now()
		col.Collect(p, ch)
		ch <- prometheus.MustNewConstMetric(scrapeCollectorDurationDesc, prometheus.GaugeValue, time.Since(ct).Seconds(), col.Name())
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 1)
}
