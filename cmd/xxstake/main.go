// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// xxstake drives the staking state machine of an xx network: it creates the
// genesis state, rotates sessions, pays out eras and serves the read API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/xxnetwork/staking/admin"
	"github.com/xxnetwork/staking/api"
	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/genesis"
	"github.com/xxnetwork/staking/health"
	"github.com/xxnetwork/staking/log"
	"github.com/xxnetwork/staking/metrics"
	"github.com/xxnetwork/staking/state"
)

var (
	version       string
	gitCommit     string
	gitTag        string
	copyrightYear string

	logger = log.WithContext("pkg", "xxstake")

	logFlags = []cli.Flag{dataDirFlag, verbosityFlag, jsonLogsFlag}
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "xxstake",
		Usage:     "Staking state machine of the xx network",
		Copyright: fmt.Sprintf("2025-%s The VeChainThor developers", copyrightYear),
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "write the genesis state of a network into the data dir",
				Flags:  append([]cli.Flag{networkFlag}, logFlags...),
				Action: initAction,
			},
			{
				Name:  "run",
				Usage: "drive sessions and serve the API",
				Flags: append([]cli.Flag{
					apiAddrFlag,
					apiCorsFlag,
					apiEventsLimitFlag,
					apiSlowQueriesThresholdFlag,
					apiLog5xxErrorsFlag,
					enableAPILogsFlag,
					enableMetricsFlag,
					enableAdminFlag,
					adminAddrFlag,
					sessionsFlag,
					sessionIntervalFlag,
					blocksPerSessionFlag,
				}, logFlags...),
				Action: runAction,
			},
			{
				Name:   "migrate",
				Usage:  "upgrade the stored staking layout to the latest release",
				Flags:  append([]cli.Flag{dryRunFlag}, logFlags...),
				Action: migrateAction,
			},
			{
				Name:   "inspect",
				Usage:  "print validators, nominators and era exposures",
				Flags:  append([]cli.Flag{eraFlag}, logFlags...),
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "parse verbosity flag")
	}
	return initLogger(lvl, ctx.Bool(jsonLogsFlag.Name)), nil
}

func readUint32Flag(ctx *cli.Context, flag cli.Uint64Flag) (uint32, error) {
	v := ctx.Uint64(flag.Name)
	if v > math.MaxUint32 {
		return 0, errors.Errorf("-%s: %d exceeds max uint32", flag.Name, v)
	}
	return uint32(v), nil
}

func initAction(ctx *cli.Context) error {
	if _, err := setupLogger(ctx); err != nil {
		return err
	}
	gene, err := genesis.NewCustomNet(selectGenesis(ctx))
	if err != nil {
		return errors.WithMessage(err, "build genesis")
	}

	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(dataDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	eventDB := openEventDB(dataDir)
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	if err := initInstance(mainDB, eventDB, gene); err != nil {
		return err
	}
	fmt.Printf("Network %v initialized in %v\n", gene.ID(), dataDir)
	return nil
}

func runAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel, err := setupLogger(ctx)
	if err != nil {
		return err
	}
	sessions, err := readUint32Flag(ctx, sessionsFlag)
	if err != nil {
		return err
	}
	blocks, err := readUint32Flag(ctx, blocksPerSessionFlag)
	if err != nil {
		return err
	}

	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(dataDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	eventDB := openEventDB(dataDir)
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	gene := mustLoadInstance(mainDB)
	store := stateBucket.NewStore(mainDB)

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}
	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	// every request reads the committed state through its own view
	reader := func() *staking.Staking {
		s, _ := gene.NewStaking(storage.NewContext(state.New(store), nil))
		return s
	}
	handler := api.New(reader, eventDB, api.Options{
		AllowedOrigins:     ctx.String(apiCorsFlag.Name),
		EventsLimit:        ctx.Uint64(apiEventsLimitFlag.Name),
		EnableMetrics:      enableMetrics,
		EnableReqLogger:    apiLogs,
		SlowQueryThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:       ctx.Bool(apiLog5xxErrorsFlag.Name),
	})
	srv, listener := listenAPI(ctx, handler)

	interval := time.Duration(ctx.Uint64(sessionIntervalFlag.Name)) * time.Millisecond
	h := health.New(max(3*interval, 10*time.Second))

	adminURL := "disabled"
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := admin.StartServer(ctx.String(adminAddrFlag.Name), logLevel, apiLogs, h)
		if err != nil {
			return errors.WithMessage(err, "start admin server")
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		adminURL = url
	}

	drv := newDriver(gene, store, eventDB, blocks, h)
	next, err := drv.next()
	if err != nil {
		return err
	}
	printStartupMessage(gene, dataDir, next, "http://"+listener.Addr().String()+"/", adminURL)

	finished := make(chan struct{})

	g, gctx := errgroup.WithContext(handleExitSignal())
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer close(finished)
		return drv.run(gctx, sessions, interval)
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-finished:
		}
		logger.Info("stopping API server...")
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}

func migrateAction(ctx *cli.Context) error {
	if _, err := setupLogger(ctx); err != nil {
		return err
	}
	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(dataDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	gene := mustLoadInstance(mainDB)
	dryRun := ctx.Bool(dryRunFlag.Name)
	logger.Info("running migrations", "network", gene.ID(), "dry-run", dryRun)

	report, err := migrate(mainDB, dryRun)
	if report != nil {
		printReport(os.Stdout, report)
	}
	return err
}

func inspectAction(ctx *cli.Context) error {
	if _, err := setupLogger(ctx); err != nil {
		return err
	}
	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(dataDir)
	defer mainDB.Close()

	gene := mustLoadInstance(mainDB)
	s, _ := gene.NewStaking(storage.NewContext(state.New(stateBucket.NewStore(mainDB)), nil))

	var era *uint32
	if v := ctx.Int64(eraFlag.Name); v >= 0 {
		if v > math.MaxUint32 {
			return errors.Errorf("-%s: %d exceeds max uint32", eraFlag.Name, v)
		}
		e := uint32(v)
		era = &e
	}
	return printStaking(os.Stdout, s, era)
}
