// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/api/utils"
	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/eventdb"
	"github.com/xxnetwork/staking/thor"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func (e *Events) filter(filter *Filter) ([]*FilteredEvent, error) {
	events, err := e.db.Filter(&eventdb.Filter{
		Stash:   filter.Stash,
		Kinds:   filter.Kinds,
		Order:   filter.Order,
		Range:   filter.Range,
		Options: filter.Options,
	})
	if err != nil {
		return nil, err
	}
	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = convertEvent(ev)
	}
	return fes, nil
}

// parseQuery reads ?stash=&kind=&era=&from=&to=&order=&offset=&limit=.
// era selects a single era and excludes from/to.
func parseQuery(req *http.Request) (*Filter, error) {
	query := req.URL.Query()
	var filter Filter
	if s := query.Get("stash"); s != "" {
		stash, err := thor.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "stash")
		}
		filter.Stash = &stash
	}
	for _, kind := range query["kind"] {
		filter.Kinds = append(filter.Kinds, staking.EventKind(kind))
	}

	era, err := utils.ParseUint32(query.Get("era"))
	if err != nil {
		return nil, errors.WithMessage(err, "era")
	}
	from, err := utils.ParseUint32(query.Get("from"))
	if err != nil {
		return nil, errors.WithMessage(err, "from")
	}
	to, err := utils.ParseUint32(query.Get("to"))
	if err != nil {
		return nil, errors.WithMessage(err, "to")
	}
	switch {
	case era != nil && (from != nil || to != nil):
		return nil, errors.New("era excludes from and to")
	case era != nil:
		filter.Range = &eventdb.Range{Unit: eventdb.Era, From: uint64(*era), To: uint64(*era)}
	case from != nil || to != nil:
		filter.Range = &eventdb.Range{Unit: eventdb.Era}
		if from != nil {
			filter.Range.From = uint64(*from)
		}
		if to != nil {
			filter.Range.To = uint64(*to)
		}
	}

	if order := query.Get("order"); order != "" {
		filter.Order = eventdb.OrderType(order)
	}
	if query.Has("offset") || query.Has("limit") {
		filter.Options = &eventdb.Options{}
		if v := query.Get("offset"); v != "" {
			if filter.Options.Offset, err = strconv.ParseUint(v, 10, 63); err != nil {
				return nil, errors.WithMessage(err, "offset")
			}
		}
		if v := query.Get("limit"); v != "" {
			if filter.Options.Limit, err = strconv.ParseUint(v, 10, 63); err != nil {
				return nil, errors.WithMessage(err, "limit")
			}
		}
	}
	return &filter, nil
}

func (e *Events) validate(filter *Filter) error {
	switch filter.Order {
	case "", eventdb.ASC, eventdb.DESC:
	default:
		return utils.BadRequest(fmt.Errorf("order: unknown %q", filter.Order))
	}
	if filter.Range != nil {
		switch filter.Range.Unit {
		case "":
			filter.Range.Unit = eventdb.Era
		case eventdb.Era, eventdb.Session:
		default:
			return utils.BadRequest(fmt.Errorf("range.unit: unknown %q", filter.Range.Unit))
		}
	}
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Options == nil {
		// one over the limit to detect truncation
		filter.Options = &eventdb.Options{Offset: 0, Limit: e.limit + 1}
	}
	return nil
}

func (e *Events) serve(w http.ResponseWriter, filter *Filter) error {
	if err := e.validate(filter); err != nil {
		return err
	}
	fes, err := e.filter(filter)
	if err != nil {
		return err
	}
	if len(fes) > int(e.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}
	return utils.WriteJSON(w, fes)
}

func (e *Events) handleQuery(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseQuery(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	return e.serve(w, filter)
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return e.serve(w, &filter)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleQuery))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
