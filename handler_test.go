package texmath

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesPreviewPage(t *testing.T) {
	h := &Handler{Title: "My preview", Initial: `\frac{a}{b}`, Display: true}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	require.Contains(t, body, "<title>My preview</title>")
	require.Contains(t, body, `\frac{a}{b}`)
	require.Contains(t, body, `id="display" checked`)
}

func TestHandlerDefaultTitle(t *testing.T) {
	h := &Handler{}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "<title>TeX math preview</title>")
}

func TestHandlerConvertsPost(t *testing.T) {
	h := &Handler{}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tex":"x^2"}`))
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Empty(t, resp.Error)
	require.Contains(t, resp.MathML, "<msup><mi>x</mi><mn>2</mn></msup>")
}

func TestHandlerReportsParseError(t *testing.T) {
	h := &Handler{}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"tex":"x^2^3"}`))
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Empty(t, resp.MathML)
	require.Equal(t, "DoubleExponent", resp.Key)
	require.Equal(t, 3, resp.Pos)
	require.Contains(t, resp.Error, "Double exponent")
}

func TestHandlerRejectsBadJSON(t *testing.T) {
	h := &Handler{}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h := &Handler{}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandlerWebSocket(t *testing.T) {
	h := &Handler{}
	srv := httptest.NewServer(h)
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteJSON(ConvertRequest{Tex: "x", Display: true}))
	var resp ConvertResponse
	require.NoError(t, ws.ReadJSON(&resp))
	require.Contains(t, resp.MathML, `display="block"`)

	// The loop keeps serving on the same connection.
	require.NoError(t, ws.WriteJSON(ConvertRequest{Tex: "{x"}))
	require.NoError(t, ws.ReadJSON(&resp))
	require.Equal(t, "ExtraOpenMissingClose", resp.Key)
}

func TestHandlerCache(t *testing.T) {
	h := &Handler{CacheSize: 1}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	h.convert(ConvertRequest{Tex: "x"})
	require.Len(t, h.cache, 1)

	// Re-converting the same input hits the cache.
	resp := h.convert(ConvertRequest{Tex: "x"})
	require.Contains(t, resp.MathML, "<mi>x</mi>")
	require.Len(t, h.cache, 1)

	// A full cache is flushed before the new entry goes in.
	h.convert(ConvertRequest{Tex: "y"})
	require.Len(t, h.cache, 1)

	// Failures are not cached.
	h.convert(ConvertRequest{Tex: "{x"})
	require.Len(t, h.cache, 1)
}

func TestHandlerCacheDisabled(t *testing.T) {
	h := &Handler{CacheSize: -1}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	h.convert(ConvertRequest{Tex: "x"})
	require.Empty(t, h.cache)
}

func TestHandlerCacheKeyIncludesDisplay(t *testing.T) {
	h := &Handler{}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	inline := h.convert(ConvertRequest{Tex: "x"})
	display := h.convert(ConvertRequest{Tex: "x", Display: true})
	require.NotEqual(t, inline.MathML, display.MathML)
	require.Len(t, h.cache, 2)
}
