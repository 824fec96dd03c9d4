package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trenddash/image-pipeline/internal/api"
)

func TestDeliverObject(t *testing.T) {
	host := newSourceHost(t, 1000, 1000)
	srv := newTestServer(t)

	body := fmt.Sprintf(`{"imageUrl": %q, "type": "thumbnail"}`, host.srv.URL+"/pic.jpg")
	rr := postProcess(t, srv, body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.ProcessResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	// The processed URL resolves against this server's CDN route.
	path := strings.TrimPrefix(resp.URL, "http://localhost:8080")
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr = httptest.NewRecorder()
	srv.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/jpeg", rr.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rr.Body.Bytes())
}

func TestDeliverObject_NotFound(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/cdn/thumbnail/0-nothing.jpg", nil)
	rr := httptest.NewRecorder()
	srv.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
