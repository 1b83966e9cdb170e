// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxnetwork/staking/api/events"
	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/eventdb"
	"github.com/xxnetwork/staking/thor"
)

const limit = 10

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

func initEventServer(t *testing.T) *httptest.Server {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// sessions 0..8, three per era; alice bonds and is rewarded every session,
	// bob is slashed once in era 2
	var evs []*eventdb.Event
	for session := uint32(0); session < 9; session++ {
		era := session / 3
		list := []staking.Event{
			{Kind: staking.EventBonded, Era: era, Stash: alice, Amount: thor.NewBalance(10)},
			{Kind: staking.EventRewarded, Era: era, Stash: alice, Amount: thor.NewBalance(uint64(session))},
		}
		if session == 7 {
			list = append(list, staking.Event{Kind: staking.EventSlashed, Era: era, Stash: bob, Amount: thor.NewBalance(5)})
		}
		evs = append(evs, eventdb.NewEvents(session, list)...)
	}
	require.NoError(t, db.Insert(evs, nil))

	router := mux.NewRouter()
	events.New(db, limit).Mount(router, "/events")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func decode(t *testing.T, body []byte) []*events.FilteredEvent {
	var fes []*events.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &fes), string(body))
	return fes
}

func TestQueryEvents(t *testing.T) {
	ts := initEventServer(t)

	body, code := httpGet(t, ts.URL+"/events?stash="+bob.String())
	require.Equal(t, http.StatusOK, code, string(body))
	fes := decode(t, body)
	require.Len(t, fes, 1)
	assert.Equal(t, staking.EventSlashed, fes[0].Kind)
	assert.Equal(t, uint32(2), fes[0].Era)
	assert.Equal(t, uint32(7), fes[0].Session)
	assert.Equal(t, thor.NewBalance(5), fes[0].Amount)

	body, code = httpGet(t, ts.URL+"/events?kind=Rewarded&era=1")
	require.Equal(t, http.StatusOK, code, string(body))
	fes = decode(t, body)
	require.Len(t, fes, 3)
	for i, fe := range fes {
		assert.Equal(t, staking.EventRewarded, fe.Kind)
		assert.Equal(t, uint32(3+i), fe.Session)
	}

	body, code = httpGet(t, ts.URL+"/events?kind=Rewarded&kind=Slashed&from=2&order=DESC")
	require.Equal(t, http.StatusOK, code, string(body))
	fes = decode(t, body)
	require.Len(t, fes, 4)
	assert.Equal(t, uint32(8), fes[0].Session)
	assert.Equal(t, staking.EventSlashed, fes[1].Kind)

	body, code = httpGet(t, ts.URL+"/events?stash="+alice.String()+"&offset=4&limit=2")
	require.Equal(t, http.StatusOK, code, string(body))
	fes = decode(t, body)
	require.Len(t, fes, 2)
	assert.Equal(t, uint32(2), fes[0].Session)
	assert.Equal(t, staking.EventBonded, fes[0].Kind)
}

func TestQueryEventsErrors(t *testing.T) {
	ts := initEventServer(t)

	for path, code := range map[string]int{
		"/events?stash=nobody":      http.StatusBadRequest,
		"/events?era=x":             http.StatusBadRequest,
		"/events?era=1&from=1":      http.StatusBadRequest,
		"/events?order=sideways":    http.StatusBadRequest,
		"/events?limit=-1":          http.StatusBadRequest,
		"/events?limit=11":          http.StatusForbidden,
		"/events?stash=0x00ff":      http.StatusBadRequest,
		"/events":                   http.StatusForbidden, // 19 events over the limit of 10
		"/events?kind=Bonded&era=0": http.StatusOK,
		"/events?from=2&to=2":       http.StatusOK,
	} {
		body, got := httpGet(t, ts.URL+path)
		assert.Equal(t, code, got, path+": "+string(body))
	}
}

func TestFilterEvents(t *testing.T) {
	ts := initEventServer(t)

	body, code := httpPost(t, ts.URL+"/events", &events.Filter{
		Kinds:   []staking.EventKind{staking.EventBonded},
		Range:   &eventdb.Range{Unit: eventdb.Session, From: 1, To: 2},
		Options: &eventdb.Options{Offset: 0, Limit: 5},
	})
	require.Equal(t, http.StatusOK, code, string(body))
	fes := decode(t, body)
	require.Len(t, fes, 2)
	assert.Equal(t, uint32(1), fes[0].Session)
	assert.Equal(t, uint32(2), fes[1].Session)

	_, code = httpPost(t, ts.URL+"/events", map[string]any{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, ts.URL+"/events", &events.Filter{Range: &eventdb.Range{Unit: "Block"}})
	assert.Equal(t, http.StatusBadRequest, code)
}
