// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/xxnetwork/staking/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the state and event databases",
	}
	networkFlag = cli.StringFlag{
		Name:  "network",
		Value: "dev",
		Usage: "the network to create (dev) or the path to a genesis file",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "only log API requests slower than this threshold in milliseconds",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log every API request answered with a 5xx status",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served on /metrics of the API",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	sessionsFlag = cli.Uint64Flag{
		Name:  "sessions",
		Value: 0,
		Usage: "number of sessions to drive before exiting (runs until interrupted if set to 0)",
	}
	sessionIntervalFlag = cli.Uint64Flag{
		Name:  "session-interval",
		Value: 1000,
		Usage: "wall clock milliseconds between two session rotations",
	}
	blocksPerSessionFlag = cli.Uint64Flag{
		Name:  "blocks-per-session",
		Value: 10,
		Usage: "blocks authored by the active validators in each session",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "evaluate migration checks without committing",
	}
	eraFlag = cli.Int64Flag{
		Name:  "era",
		Value: -1,
		Usage: "era to show points and exposures of (defaults to the active era)",
	}
)
