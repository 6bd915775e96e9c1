package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"time"

	"github.com/R4scal/freebox_exporter/page"
	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/net/html/charset"
	yaml "gopkg.in/yaml.v2"
)

// DefaultTimeout bounds the status page request
const DefaultTimeout = 30 * time.Second

// Config represents the configuration of the plugin and exporter
type Config struct {
	URL      string        `yaml:"url"`
	Encoding string        `yaml:"encoding,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	// Families exported by the serve mode, all of them when empty
	Families []string `yaml:"families,omitempty"`
}

// Default returns the configuration used without a config file
func Default() *Config {
	return &Config{
		URL:      page.DefaultURL,
		Encoding: page.DefaultEncoding,
		Timeout:  DefaultTimeout,
	}
}

// Load reads YAML from reader and unmashals it over the defaults
func Load(r io.Reader) (*Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	c := Default()
	err = yaml.Unmarshal(b, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the configuration, known lists the valid family names
func (c *Config) Validate(known []string) error {
	var errs *multierror.Error

	if u, err := url.Parse(c.URL); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("invalid url %q: %v", c.URL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = multierror.Append(errs, fmt.Errorf("invalid url %q: scheme must be http or https", c.URL))
	}

	if e, _ := charset.Lookup(c.Encoding); e == nil {
		errs = multierror.Append(errs, fmt.Errorf("unknown encoding %q", c.Encoding))
	}

	if c.Timeout < 0 {
		errs = multierror.Append(errs, fmt.Errorf("negative timeout %s", c.Timeout))
	}

	seen := make(map[string]bool, len(c.Families))
	for _, f := range c.Families {
		if !contains(known, f) {
			errs = multierror.Append(errs, fmt.Errorf("unknown family %q", f))
		} else if seen[f] {
			errs = multierror.Append(errs, fmt.Errorf("duplicate family %q", f))
		}
		seen[f] = true
	}

	return errs.ErrorOrNil()
}

func contains(l []string, s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
