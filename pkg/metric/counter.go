package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// ResolutionsName counts menu resolutions by outcome.
	ResolutionsName = "docnav_menu_resolutions_total"

	// RequestsName counts HTTP requests by route and status.
	RequestsName = "docnav_http_requests_total"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Vec exposes the underlying vector, mostly for tests.
func (c *Counter) Vec() *prometheus.CounterVec {
	return c.vec
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// NewResolutionCounter registers the menu resolution counter, labeled by outcome.
func NewResolutionCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, ResolutionsName, "Number of menu resolutions by outcome.", "outcome")
}

// NewRequestCounter registers the HTTP request counter, labeled by route and status.
func NewRequestCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, RequestsName, "Number of HTTP requests by route and status.", "route", "status")
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
