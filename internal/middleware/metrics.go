package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	rpcRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pocketbook",
		Name:      "rpc_requests_total",
		Help:      "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	rpcDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pocketbook",
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
)

// Collectors returns the RPC metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{rpcRequests, rpcDuration}
}

// MetricsInterceptor counts RPCs by result code and records their latency.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			rpcRequests.WithLabelValues(procedure, code).Inc()
			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
