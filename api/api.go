// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/xxnetwork/staking/api/events"
	"github.com/xxnetwork/staking/api/middleware"
	"github.com/xxnetwork/staking/api/staking"
	"github.com/xxnetwork/staking/eventdb"
	"github.com/xxnetwork/staking/log"
	"github.com/xxnetwork/staking/metrics"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins     string
	EventsLimit        uint64
	EnableMetrics      bool
	EnableReqLogger    *atomic.Bool
	SlowQueryThreshold time.Duration
	Log5xxErrors       bool
}

// New return api router
func New(reader staking.Reader, eventDB *eventdb.EventDB, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(reader).
		Mount(router, "/staking")
	if eventDB != nil {
		events.New(eventDB, opts.EventsLimit).
			Mount(router, "/events")
	}

	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	if opts.EnableReqLogger != nil {
		router.Use(middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueryThreshold, opts.Log5xxErrors))
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)
	return handler
}
