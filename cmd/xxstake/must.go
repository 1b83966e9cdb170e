// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/xxnetwork/staking/eventdb"
	"github.com/xxnetwork/staking/genesis"
	"github.com/xxnetwork/staking/kv"
	"github.com/xxnetwork/staking/lvldb"
	"github.com/xxnetwork/staking/state"
)

const (
	stateBucket = kv.Bucket("s")
	metaBucket  = kv.Bucket("m")
)

var metaGenesisKey = []byte("genesis")

func selectGenesis(ctx *cli.Context) *genesis.CustomGenesis {
	network := ctx.String(networkFlag.Name)
	if network == "dev" {
		return genesis.NewDevnet()
	}
	gen, err := genesis.LoadFile(network)
	if err != nil {
		fatal(fmt.Sprintf("load genesis file: %v", err))
	}
	return gen
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func openMainDB(dataDir string) *lvldb.LevelDB {
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

func openEventDB(dataDir string) *eventdb.EventDB {
	path := filepath.Join(dataDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open event database [%v]: %v", path, err))
	}
	return db
}

// initInstance writes the genesis state of gene into db, archives the
// genesis events as session 0 and records the network definition.
func initInstance(db kv.Store, eventDB *eventdb.EventDB, gene *genesis.Genesis) error {
	meta := metaBucket.NewStore(db)
	has, err := meta.Has(metaGenesisKey)
	if err != nil {
		return err
	}
	if has {
		return errors.New("data dir already initialized")
	}

	st := state.New(stateBucket.NewStore(db))
	events, err := gene.Build(st)
	if err != nil {
		return errors.WithMessage(err, "build genesis")
	}
	if eventDB != nil {
		if err := eventDB.Insert(eventdb.NewEvents(0, events), []uint32{0}); err != nil {
			return errors.WithMessage(err, "archive genesis events")
		}
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}

	data, err := gene.Custom().Encode()
	if err != nil {
		return err
	}
	return meta.Put(metaGenesisKey, data)
}

// loadInstance rebuilds the network recorded by initInstance.
func loadInstance(db kv.Store) (*genesis.Genesis, error) {
	meta := metaBucket.NewStore(db)
	data, err := meta.Get(metaGenesisKey)
	if err != nil {
		if meta.IsNotFound(err) {
			return nil, errors.New("data dir not initialized, run init first")
		}
		return nil, err
	}
	gen, err := genesis.Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithMessage(err, "decode recorded genesis")
	}
	return genesis.NewCustomNet(gen)
}

func mustLoadInstance(db kv.Store) *genesis.Genesis {
	gene, err := loadInstance(db)
	if err != nil {
		fatal(err)
	}
	return gene
}

func listenAPI(ctx *cli.Context, handler http.Handler) (*http.Server, net.Listener) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	return srv, listener
}

func printStartupMessage(gene *genesis.Genesis, dataDir string, next uint32, apiURL, adminURL string) {
	fmt.Printf(`Starting %v
    Network      [ %v ]
    Launch time  [ %v ]
    Next session [ %v ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Admin        [ %v ]
`,
		"xxstake "+fullVersion(),
		gene.ID(),
		time.UnixMilli(int64(gene.LaunchTime())).UTC(),
		next,
		dataDir,
		apiURL,
		adminURL)
}
