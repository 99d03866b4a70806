package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ethernal-Tech/bridge-status-tracker/api/core"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

type testController struct{}

func (testController) GetPathPrefix() string {
	return "test"
}

func (testController) GetEndpoints() []*core.APIEndpoint {
	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	return []*core.APIEndpoint{
		{Path: "public", Method: http.MethodGet, Handler: ok},
		{Path: "private", Method: http.MethodPost, Handler: ok, APIKeyAuth: true},
	}
}

func TestAPIRouting(t *testing.T) {
	apiObj, err := NewAPI(context.Background(), core.APIConfig{
		PathPrefix:   "api",
		APIKeyHeader: "X-API-KEY",
		APIKeys:      []string{"secret"},
	}, []core.APIController{testController{}}, hclog.NewNullLogger())
	require.NoError(t, err)

	serve := func(method string, url string, apiKey string) int {
		req := httptest.NewRequest(method, url, nil)
		if apiKey != "" {
			req.Header.Set("X-API-KEY", apiKey)
		}

		rec := httptest.NewRecorder()
		apiObj.handler.ServeHTTP(rec, req)

		return rec.Code
	}

	t.Run("public endpoint", func(t *testing.T) {
		require.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/test/public", ""))
	})

	t.Run("wrong method", func(t *testing.T) {
		require.Equal(t, http.StatusMethodNotAllowed, serve(http.MethodPost, "/api/test/public", ""))
	})

	t.Run("unknown path", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, serve(http.MethodGet, "/api/test/unknown", ""))
	})

	t.Run("api key missing", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/test/private", ""))
	})

	t.Run("api key invalid", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/test/private", "wrong"))
	})

	t.Run("api key valid", func(t *testing.T) {
		require.Equal(t, http.StatusOK, serve(http.MethodPost, "/api/test/private", "secret"))
	})
}

func TestAPIDisposeBeforeStart(t *testing.T) {
	apiObj, err := NewAPI(context.Background(), core.APIConfig{}, nil, hclog.NewNullLogger())
	require.NoError(t, err)
	require.NoError(t, apiObj.Dispose())
}
