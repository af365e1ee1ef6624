package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    // Queries counts finished dispatches, labeled by outcome.
    Queries = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "llmbridge_queries_total",
        Help: "Finished model dispatches",
    }, []string{"model", "outcome"}) // outcome: ok, too_big, api_error, error

    // StreamChunks counts streamed deltas delivered to handlers.
    StreamChunks = promauto.NewCounter(prometheus.CounterOpts{
        Name: "llmbridge_stream_chunks_total",
        Help: "Streamed completion chunks delivered",
    })

    // InFlight tracks dispatches currently running.
    InFlight = promauto.NewGauge(prometheus.GaugeOpts{
        Name: "llmbridge_queries_in_flight",
        Help: "Model dispatches currently running",
    })
)
