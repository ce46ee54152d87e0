package main

import (
	"errors"
	"net/url"
	"time"

	"go.xrstf.de/release_calendar/pkg/client"
)

type options struct {
	baseURL     string
	year        int
	timeout     time.Duration
	metricsFile string
	debugLog    bool
}

func defaultOptions() options {
	return options{
		baseURL: client.DefaultBaseURL,
	}
}

func (o *options) validate() error {
	u, err := url.Parse(o.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(`--base-url must be an absolute URL like "https://api.github.com"`)
	}

	if o.year < 0 {
		return errors.New("--year must not be negative")
	}

	if o.timeout < 0 {
		return errors.New("--timeout must not be negative")
	}

	return nil
}
