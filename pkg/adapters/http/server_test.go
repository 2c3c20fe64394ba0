package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sluice"
	sluicehttp "github.com/aretw0/sluice/pkg/adapters/http"
	"github.com/aretw0/sluice/pkg/domain"
)

func TestHandler_Tree(t *testing.T) {
	eng := sluice.New()
	root := eng.Root()
	root.Gate(func() bool { return true }, nil)
	root.Watch(func(*sluice.Scope) any { return 1 }, nil, domain.EqualityIdentity, "price")
	root.NewChild()

	handler := sluicehttp.NewHandler(eng)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tree")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info domain.ScopeInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))

	assert.True(t, info.Gated)
	require.NotNil(t, info.GateOpen)
	assert.True(t, *info.GateOpen)
	assert.Len(t, info.Children, 1)

	// The gated binding plus the gate's driver.
	require.Len(t, info.Bindings, 2)
}

func TestHandler_Healthz(t *testing.T) {
	srv := httptest.NewServer(sluicehttp.NewHandler(sluice.New()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_CORS(t *testing.T) {
	srv := httptest.NewServer(sluicehttp.NewHandler(sluice.New()))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/tree", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
