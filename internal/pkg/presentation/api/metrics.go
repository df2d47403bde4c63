package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	convertedItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapitems_converted_total",
		Help: "The total number of map items converted to their outbound representation",
	}, []string{"operation"})
	failedConversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapitems_conversion_failures_total",
		Help: "The total number of requests that could not be converted",
	}, []string{"operation"})
)
