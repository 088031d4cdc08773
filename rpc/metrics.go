package rpc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_quote_requests_total",
		Help: "Quote requests by outcome.",
	}, []string{"outcome"})

	swapRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_swap_requests_total",
		Help: "Swap requests by outcome.",
	}, []string{"outcome"})
)
