// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xxstaking "github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/genesis"
	"github.com/xxnetwork/staking/lvldb"
	"github.com/xxnetwork/staking/metrics"
	"github.com/xxnetwork/staking/state"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func TestMetricsMiddleware(t *testing.T) {
	gene, err := genesis.NewCustomNet(genesis.NewDevnet())
	require.NoError(t, err)

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := state.New(db)
	_, err = gene.Build(st)
	require.NoError(t, err)
	require.NoError(t, st.Stage().Commit())

	reader := func() *xxstaking.Staking {
		s, _ := gene.NewStaking(storage.NewContext(state.New(db), nil))
		return s
	}

	ts := httptest.NewServer(New(reader, nil, Options{EnableMetrics: true}))
	defer ts.Close()

	_, code := httpGet(t, ts.URL+"/staking/version")
	assert.Equal(t, 200, code)
	_, code = httpGet(t, ts.URL+"/staking/version")
	assert.Equal(t, 200, code)
	_, code = httpGet(t, ts.URL+"/staking/eras/x/points")
	assert.Equal(t, 400, code)
	_, code = httpGet(t, ts.URL+"/not/routed")
	assert.Equal(t, 404, code)

	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	m := families["xx_staking_api_request_count"].GetMetric()
	require.Equal(t, 2, len(m), "unnamed routes are not counted")
	assert.Equal(t, float64(2), m[0].GetCounter().GetValue())
	assert.Equal(t, float64(1), m[1].GetCounter().GetValue())

	labels := m[0].GetLabel()
	require.Equal(t, 3, len(labels))
	assert.Equal(t, "code", labels[0].GetName())
	assert.Equal(t, "200", labels[0].GetValue())
	assert.Equal(t, "method", labels[1].GetName())
	assert.Equal(t, "GET", labels[1].GetValue())
	assert.Equal(t, "name", labels[2].GetName())
	assert.Equal(t, "GET /staking/version", labels[2].GetValue())

	labels = m[1].GetLabel()
	require.Equal(t, 3, len(labels))
	assert.Equal(t, "400", labels[0].GetValue())
	assert.Equal(t, "GET /staking/eras/{era}/points", labels[2].GetValue())

	hist := families["xx_staking_api_duration_ms"].GetMetric()
	require.Equal(t, 1, len(hist))
	assert.Equal(t, uint64(3), hist[0].GetHistogram().GetSampleCount())
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
