package httpapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/digipath/dataset"
	"github.com/katalvlaran/digipath/httpapi"
	"github.com/katalvlaran/digipath/internal/logging"
	"github.com/katalvlaran/digipath/internal/metrics"
	"github.com/katalvlaran/digipath/relay"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds, err := dataset.Load("../dataset/testdata/catalog")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	pool, err := relay.NewPool(ds.Graph,
		relay.WithObserver(metrics.New(reg)),
		relay.WithLogger(logging.NewNop()),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(httpapi.NewHandler(&httpapi.Server{
		Dataset:  ds,
		Pool:     pool,
		Logger:   logging.NewNop(),
		Gatherer: reg,
	}))
	t.Cleanup(srv.Close)

	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func TestFindPath(t *testing.T) {
	srv := newServer(t)

	var resp relay.Response
	code := postJSON(t, srv.URL+"/v1/paths", `{"id":"r1","origin":"46","target":"239","moves":["81"]}`, &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "r1", resp.ID)
	assert.True(t, resp.Found)
	assert.Equal(t, 10, resp.Cost)
	require.Len(t, resp.Path, 4)
	assert.Equal(t, "17", resp.Path[1].DigimonID)
	assert.Equal(t, []string{"81"}, resp.Path[1].LearnedMoves)
	require.NotNil(t, resp.Path[3].Requirements)
	assert.Equal(t, []string{"Agumon ally", "Heroic Spirit"}, resp.Path[3].Requirements.Misc)
}

func TestFindPath_NotFoundIs200(t *testing.T) {
	srv := newServer(t)

	var resp relay.Response
	code := postJSON(t, srv.URL+"/v1/paths", `{"origin":"6","target":"400"}`, &resp)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Found)
	assert.Equal(t, "unreachable", string(resp.Outcome))
}

func TestFindPath_BadRequests(t *testing.T) {
	srv := newServer(t)

	for name, body := range map[string]string{
		"not json":      `{`,
		"missing":       `{"origin":"6"}`,
		"abi too large": `{"origin":"6","target":"17","initialAbi":500}`,
	} {
		t.Run(name, func(t *testing.T) {
			var out map[string]string
			code := postJSON(t, srv.URL+"/v1/paths", body, &out)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestGetDigimon(t *testing.T) {
	srv := newServer(t)

	var out struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Stage    string `json:"stage"`
		Forward  []struct{ To string } `json:"forward"`
		Backward []struct{ To string } `json:"backward"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/digimon/17", &out))
	assert.Equal(t, "Agumon", out.Name)
	assert.Equal(t, "Rookie", out.Stage)
	require.Len(t, out.Forward, 1)
	assert.Equal(t, "46", out.Forward[0].To)
	require.Len(t, out.Backward, 1)
	assert.Equal(t, "6", out.Backward[0].To)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/v1/digimon/404", nil))
}

func TestGetLearners(t *testing.T) {
	srv := newServer(t)

	var out struct {
		Move     string   `json:"move"`
		Name     string   `json:"name"`
		Learners []string `json:"learners"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/moves/99/learners", &out))
	assert.Equal(t, "Fox Fire", out.Name)
	assert.Equal(t, []string{"50"}, out.Learners)
}

func TestGetAdvice(t *testing.T) {
	srv := newServer(t)

	var out struct {
		TargetLevel int     `json:"targetLevel"`
		Gain        float64 `json:"abiGain"`
		ExpRequired int     `json:"expRequired"`
		Direction   string  `json:"direction"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/v1/abi/advice?stage=champion&level=20", &out))
	assert.Equal(t, "dedigivolve", out.Direction)
	assert.Equal(t, 7.0, out.Gain)
	assert.Equal(t, 500, out.ExpRequired)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/abi/advice?stage=adult&level=20", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/v1/abi/advice?stage=rookie&level=x", nil))
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	var health map[string]string
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &health))
	assert.Equal(t, "ok", health["status"])

	postJSON(t, srv.URL+"/v1/paths", `{"origin":"6","target":"17"}`, nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `digipath_searches_total{outcome="found"} 1`)
}
