package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/R4scal/freebox_exporter/collector"
	"github.com/R4scal/freebox_exporter/config"
	"github.com/R4scal/freebox_exporter/page"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/log"
	"github.com/prometheus/common/version"
)

const pluginPrefix = "freebox_"

type options struct {
	action        *string
	family        *string
	pageURL       *string
	encoding      *string
	timeout       *time.Duration
	configFile    *string
	listenAddress *string
	metricsPath   *string
	timeoutOffset *float64
}

// newApp declares the command line. The plugin is installed as
// freebox_<family> symlinks, munin passes the action as argument.
func newApp(arg0 string) (*kingpin.Application, *options) {
	app := kingpin.New(filepath.Base(arg0), "Munin plugin and Prometheus exporter for the Freebox status page.")
	o := &options{
		action:        app.Arg("action", "Munin action (config, autoconf, suggest), or serve to run the Prometheus exporter.").Default("fetch").Enum("fetch", "config", "describe", "autoconf", "suggest", "serve"),
		family:        app.Flag("family", "Metric family, taken from the program name freebox_<family> by default.").Envar("FREEBOX_FAMILY").Default(familyFromProgram(arg0)).String(),
		pageURL:       app.Flag("url", "Address of the status page.").Envar("FREEBOX_URL").String(),
		encoding:      app.Flag("encoding", "Charset of the status page.").Envar("FREEBOX_ENCODING").String(),
		timeout:       app.Flag("timeout", "Timeout of the status page request.").Envar("FREEBOX_TIMEOUT").Duration(),
		configFile:    app.Flag("config-file", "config file to load").Envar("FREEBOX_CONFIG").Default("").String(),
		listenAddress: app.Flag("web.listen-address", "Address on which to expose metrics and web interface.").Default(":9654").String(),
		metricsPath:   app.Flag("web.telemetry-path", "Path under which to expose Prometheus metrics.").Default("/metrics").String(),
		timeoutOffset: app.Flag("timeout-offset", "Offset to subtract from timeout in seconds.").Default("0.5").Float64(),
	}
	log.AddFlags(app)
	app.Version(version.Print("freebox_exporter"))
	app.HelpFlag.Short('h')
	return app, o
}

func familyFromProgram(arg0 string) string {
	name := filepath.Base(arg0)
	if !strings.HasPrefix(name, pluginPrefix) {
		return ""
	}
	return strings.TrimPrefix(name, pluginPrefix)
}

func loadConfig(o *options) (*config.Config, error) {
	c := config.Default()
	if *o.configFile != "" {
		b, err := ioutil.ReadFile(*o.configFile)
		if err != nil {
			return nil, err
		}
		c, err = config.Load(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
	}

	// flags win over the config file
	if *o.pageURL != "" {
		c.URL = *o.pageURL
	}
	if *o.encoding != "" {
		c.Encoding = *o.encoding
	}
	if *o.timeout != 0 {
		c.Timeout = *o.timeout
	}

	if err := c.Validate(familyNames()); err != nil {
		return nil, err
	}
	return c, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	netTransport := &http.Transport{
		Dial: (&net.Dialer{
			Timeout: timeout,
		}).Dial,
		MaxIdleConnsPerHost: 1,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: netTransport,
	}
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app, o := newApp(args[0])
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	if _, err := app.Parse(args[1:]); err != nil {
		app.Errorf("%s, try --help", err)
		return 2
	}

	p := &plugin{
		stdout: stdout,
		stderr: stderr,
	}

	// graph metadata and family names do not depend on the status page
	switch *o.action {
	case "config", "describe", "suggest":
		return p.run(context.Background(), *o.action, *o.family)
	}

	conf, err := loadConfig(o)
	if err != nil {
		log.Errorln("Could not load config:", err)
		return 1
	}
	log.Debugln("Loaded config, url:", conf.URL)

	fetcher := page.NewFetcher(conf.URL, conf.Encoding, newHTTPClient(conf.Timeout))

	if *o.action == "serve" {
		return serve(o, conf, fetcher)
	}

	p.fetcher = fetcher
	return p.run(context.Background(), *o.action, *o.family)
}

func serve(o *options, conf *config.Config, fetcher *page.Fetcher) int {
	log.Infoln("Starting freebox_exporter", version.Info())
	log.Infoln("Build context", version.BuildContext())

	collectors, err := selectCollectors(conf.Families)
	if err != nil {
		log.Errorln(err)
		return 1
	}
	prometheus.MustRegister(version.NewCollector("freebox_exporter"))

	http.HandleFunc(*o.metricsPath, func(w http.ResponseWriter, r *http.Request) {
		metricsHandler(w, r, fetcher, collectors, *o.timeoutOffset)
	})
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html>
    <head><title>Freebox Exporter</title></head>
    <body>
    <h1>Freebox Exporter</h1>
    <p><a href="` + *o.metricsPath + `">Metrics</a></p>
	</body>
    </html>`))
	})

	srv := http.Server{Addr: *o.listenAddress}
	srvc := make(chan struct{})
	term := make(chan os.Signal, 1)
	signal.Notify(term, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infoln("Listening on address", *o.listenAddress)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorln("Error starting HTTP server:", err)
			close(srvc)
		}
	}()

	for {
		select {
		case <-term:
			log.Infoln("Received SIGTERM, exiting gracefully...")
			return 0
		case <-srvc:
			return 1
		}
	}
}

func metricsHandler(w http.ResponseWriter, r *http.Request, fetcher *page.Fetcher, collectors []collector.Collector, offset float64) {
	timeoutSeconds, err := getTimeout(r, offset)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse timeout from Prometheus header: %s", err), http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeoutSeconds*float64(time.Second)))
	defer cancel()
	r = r.WithContext(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(newFreeboxCollector(ctx, fetcher, collectors))

	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer, registry}
	promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{
		ErrorLog:      log.NewErrorLogger(),
		ErrorHandling: promhttp.ContinueOnError}).ServeHTTP(w, r)
}

func getTimeout(r *http.Request, offset float64) (timeoutSeconds float64, err error) {
	// If a timeout is configured via the Prometheus header, add it to the request.
	if v := r.Header.Get("X-Prometheus-Scrape-Timeout-Seconds"); v != "" {
		var err error
		timeoutSeconds, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, err
		}
	}
	if timeoutSeconds == 0 {
		timeoutSeconds = 120
	}

	return timeoutSeconds - offset, nil
}
