// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking serves read-only views of the staking state.
package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/api/utils"
	xxstaking "github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// Reader returns staking over the latest committed state.
// Each request takes its own reader.
type Reader func() *xxstaking.Staking

type Staking struct {
	reader Reader
}

func New(reader Reader) *Staking {
	return &Staking{reader}
}

func parseAddress(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func parseEra(req *http.Request) (uint32, error) {
	era, err := utils.ParseUint32(mux.Vars(req)["era"])
	if err != nil || era == nil {
		return 0, utils.BadRequest(errors.New("era: invalid number"))
	}
	return *era, nil
}

func (s *Staking) handleGetLedger(w http.ResponseWriter, req *http.Request) error {
	controller, err := parseAddress(req, "controller")
	if err != nil {
		return err
	}
	l, err := s.reader().Ledger(controller)
	if err != nil {
		return err
	}
	if l == nil {
		return utils.NotFound(errors.New("controller not bonded"))
	}
	return utils.WriteJSON(w, convertLedger(l))
}

func (s *Staking) handleGetStash(w http.ResponseWriter, req *http.Request) error {
	stash, err := parseAddress(req, "stash")
	if err != nil {
		return err
	}
	info, err := s.reader().Stash(stash)
	if err != nil {
		return err
	}
	if info == nil {
		return utils.NotFound(errors.New("stash not bonded"))
	}
	return utils.WriteJSON(w, convertStash(info))
}

func (s *Staking) handleGetCmixOwner(w http.ResponseWriter, req *http.Request) error {
	token, err := thor.ParseBytes32(mux.Vars(req)["token"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "token"))
	}
	stash, ok, err := s.reader().CmixOwner(token)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NotFound(errors.New("cmix id not registered"))
	}
	return utils.WriteJSON(w, &CmixOwner{CmixID: token, Stash: stash})
}

func (s *Staking) handleGetEras(w http.ResponseWriter, _ *http.Request) error {
	reader := s.reader()
	var eras Eras
	active, err := reader.ActiveEra()
	if err != nil {
		return err
	}
	if active != nil {
		eras.Active = &active.Index
		eras.Start = active.Start
	}
	current, ok, err := reader.CurrentEra()
	if err != nil {
		return err
	}
	if ok {
		eras.Current = &current
	}
	forcing, err := reader.ForceEra()
	if err != nil {
		return err
	}
	eras.Forcing = forcing.String()
	return utils.WriteJSON(w, &eras)
}

func (s *Staking) handleGetPoints(w http.ResponseWriter, req *http.Request) error {
	era, err := parseEra(req)
	if err != nil {
		return err
	}
	points, err := s.reader().EraPoints(era)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPoints(era, points))
}

func (s *Staking) handleGetExposure(w http.ResponseWriter, req *http.Request) error {
	era, err := parseEra(req)
	if err != nil {
		return err
	}
	stash, err := parseAddress(req, "stash")
	if err != nil {
		return err
	}
	var exposure *types.Exposure
	if req.URL.Query().Get("clipped") == "true" {
		exposure, err = s.reader().ClippedExposure(era, stash)
	} else {
		exposure, err = s.reader().Exposure(era, stash)
	}
	if err != nil {
		return err
	}
	if exposure == nil {
		return utils.NotFound(errors.New("validator not elected in era"))
	}
	return utils.WriteJSON(w, convertExposure(era, stash, exposure))
}

func (s *Staking) handleGetElected(w http.ResponseWriter, req *http.Request) error {
	era, err := parseEra(req)
	if err != nil {
		return err
	}
	elected, err := s.reader().ElectedValidators(era)
	if err != nil {
		return err
	}
	if elected == nil {
		elected = []thor.Address{}
	}
	return utils.WriteJSON(w, elected)
}

func (s *Staking) handleGetVersion(w http.ResponseWriter, _ *http.Request) error {
	reader := s.reader()
	version, err := reader.Version()
	if err != nil {
		return err
	}
	validators, nominators, err := reader.Counters()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Version{
		Version:    version.String(),
		Latest:     types.LatestRelease.String(),
		Validators: validators,
		Nominators: nominators,
	})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/ledgers/{controller}").
		Methods(http.MethodGet).
		Name("GET /staking/ledgers/{controller}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetLedger))
	sub.Path("/stashes/{stash}").
		Methods(http.MethodGet).
		Name("GET /staking/stashes/{stash}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStash))
	sub.Path("/cmix/{token}").
		Methods(http.MethodGet).
		Name("GET /staking/cmix/{token}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetCmixOwner))
	sub.Path("/eras/active").
		Methods(http.MethodGet).
		Name("GET /staking/eras/active").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetEras))
	sub.Path("/eras/{era}/points").
		Methods(http.MethodGet).
		Name("GET /staking/eras/{era}/points").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPoints))
	sub.Path("/eras/{era}/validators").
		Methods(http.MethodGet).
		Name("GET /staking/eras/{era}/validators").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetElected))
	sub.Path("/eras/{era}/exposures/{stash}").
		Methods(http.MethodGet).
		Name("GET /staking/eras/{era}/exposures/{stash}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetExposure))
	sub.Path("/version").
		Methods(http.MethodGet).
		Name("GET /staking/version").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetVersion))
}
