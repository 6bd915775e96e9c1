package main

import (
	"context"
	"fmt"
	"io"

	"github.com/R4scal/freebox_exporter/munin"
	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/common/log"
)

type plugin struct {
	fetcher *page.Fetcher
	stdout  io.Writer
	stderr  io.Writer
}

// run answers a munin action and returns the exit code
func (p *plugin) run(ctx context.Context, action, family string) int {
	switch action {
	case "config", "describe":
		return p.config(family)
	case "autoconf":
		return p.autoconf(ctx)
	case "suggest":
		return p.suggest()
	default:
		return p.values(ctx, family)
	}
}

// config writes the graph metadata, without fetching the page
func (p *plugin) config(family string) int {
	c, err := lookup(family)
	if err != nil {
		fmt.Fprintln(p.stdout, unknownFamilyMessage())
		return 1
	}
	if err := munin.WriteConfig(p.stdout, c.Graph()); err != nil {
		log.Errorln(err)
		return 1
	}
	return 0
}

// values fetches the page and writes the family samples
func (p *plugin) values(ctx context.Context, family string) int {
	c, err := lookup(family)
	if err != nil {
		fmt.Fprintln(p.stderr, unknownFamilyMessage())
		return 1
	}

	pg, err := p.fetcher.Fetch(ctx)
	if err != nil {
		log.Errorln(err)
		return 1
	}
	log.Debugf("read %d lines for %s", len(pg), family)

	if err := munin.WriteValues(p.stdout, c.Samples(pg)); err != nil {
		log.Errorln(err)
		return 1
	}
	return 0
}

func (p *plugin) autoconf(ctx context.Context) int {
	if _, err := p.fetcher.Fetch(ctx); err != nil {
		fmt.Fprintf(p.stdout, "no (%v)\n", err)
		return 0
	}
	fmt.Fprintln(p.stdout, "yes")
	return 0
}

func (p *plugin) suggest() int {
	for _, name := range familyNames() {
		fmt.Fprintln(p.stdout, name)
	}
	return 0
}
