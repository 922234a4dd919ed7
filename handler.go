package texmath

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dpotapov/go-texmath/texparse"

	"github.com/gorilla/websocket"
	"github.com/segmentio/fasthash/fnv1a"
)

// wsUpgrader is a Gorilla WebSocket instance, used to respond HTTP requests
// with WebSocket.
var wsUpgrader = websocket.Upgrader{}

// defaultCacheSize is the number of conversions kept by a Handler when no
// explicit size is configured.
const defaultCacheSize = 1024

// previewTemplate is the single-page preview UI. Placeholders are
// interpolated once at handler initialization.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>${title}</title>
<style>
body { font-family: sans-serif; margin: 2em auto; max-width: 50em; }
textarea { width: 100%; height: 8em; font-family: monospace; font-size: 1em; }
#output { margin-top: 1em; font-size: 1.4em; min-height: 2em; }
#error { color: #b00; font-family: monospace; white-space: pre; }
</style>
</head>
<body>
<h1>${title}</h1>
<textarea id="src" placeholder="Type TeX math, e.g. \frac{a}{b}">${initial}</textarea>
<label><input type="checkbox" id="display" ${display_checked}> display style</label>
<div id="output"></div>
<div id="error"></div>
<script>
const src = document.getElementById("src");
const display = document.getElementById("display");
const output = document.getElementById("output");
const error = document.getElementById("error");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + location.pathname);
ws.onmessage = (ev) => {
	const msg = JSON.parse(ev.data);
	if (msg.error) { error.textContent = msg.error; }
	else { error.textContent = ""; output.innerHTML = msg.mathml; }
};
const send = () => {
	if (ws.readyState === WebSocket.OPEN) {
		ws.send(JSON.stringify({tex: src.value, display: display.checked}));
	}
};
src.addEventListener("input", send);
display.addEventListener("change", send);
ws.onopen = send;
</script>
</body>
</html>`

// ConvertRequest is one conversion submitted to the handler, over POST or
// a WebSocket message.
type ConvertRequest struct {
	Tex     string `json:"tex"`
	Display bool   `json:"display"`
}

// ConvertResponse carries the markup or the failure of one conversion.
type ConvertResponse struct {
	MathML string `json:"mathml,omitempty"`
	Error  string `json:"error,omitempty"`
	Key    string `json:"key,omitempty"`
	Pos    int    `json:"pos,omitempty"`
}

// Handler serves a live TeX-to-MathML preview: GET returns the preview
// page, POST converts one expression to JSON, and a WebSocket upgrade
// enters a read-convert-write loop re-rendering on every message.
type Handler struct {
	// Options are the parser options applied to every conversion.
	Options *texparse.Options

	// Title of the preview page.
	Title string

	// Initial expression shown when the page loads.
	Initial string

	// Display preselects display style in the preview UI.
	Display bool

	// CacheSize caps the number of cached conversions. Zero selects the
	// default; negative disables caching.
	CacheSize int

	// OnError is called when a request fails outside of a TeX parse error.
	OnError func(*http.Request, error)

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the handler only once.
	init sync.Once

	logger  *slog.Logger
	page    []byte
	pageErr error // page template interpolation failure, reported per request

	mu    sync.Mutex
	cache map[uint64]string
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.init.Do(func() {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if h.Logger != nil {
			h.logger = h.Logger
		}
		h.cache = map[uint64]string{}
		h.page, h.pageErr = h.renderPage()
	})

	if err := h.handleRequest(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		h.logger.Error("Serve HTTP request", "url", r.URL.Redacted(), "error", err)

		if h.OnError != nil {
			h.OnError(r, err)
		}
	}
}

func (h *Handler) renderPage() ([]byte, error) {
	title := h.Title
	if title == "" {
		title = "TeX math preview"
	}
	checked := ""
	if h.Display {
		checked = "checked"
	}
	args := map[string]any{
		"title":           title,
		"initial":         h.Initial,
		"display_checked": checked,
	}
	progs, err := Interpol(previewTemplate, args)
	if err != nil {
		return nil, fmt.Errorf("compile preview template: %w", err)
	}
	page, err := Render(progs, args)
	if err != nil {
		return nil, fmt.Errorf("render preview template: %w", err)
	}
	return []byte(page), nil
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) error {
	if websocket.IsWebSocketUpgrade(r) {
		return h.serveWebSocket(w, r)
	}
	switch r.Method {
	case http.MethodGet:
		if h.pageErr != nil {
			return h.pageErr
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := w.Write(h.page)
		return err
	case http.MethodPost:
		var req ConvertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return nil
		}
		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(h.convert(req))
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil
	}
}

func (h *Handler) serveWebSocket(w http.ResponseWriter, r *http.Request) error {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	// Re-render on each incoming message until the peer goes away.
	for {
		var req ConvertRequest
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read websocket message: %w", err)
		}
		if err := ws.WriteJSON(h.convert(req)); err != nil {
			return fmt.Errorf("write websocket message: %w", err)
		}
	}
}

// convert runs one conversion through the read-through cache.
func (h *Handler) convert(req ConvertRequest) ConvertResponse {
	key := fnv1a.HashString64(req.Tex)
	if req.Display {
		key = fnv1a.AddString64(key, "display")
	}

	if h.CacheSize >= 0 {
		h.mu.Lock()
		mathml, ok := h.cache[key]
		h.mu.Unlock()
		if ok {
			return ConvertResponse{MathML: mathml}
		}
	}

	mathml, err := ConvertWith(req.Tex, req.Display, h.Options)
	if err != nil {
		h.logger.Debug("Convert TeX", "tex", req.Tex, "error", err)
		resp := ConvertResponse{Error: err.Error()}
		if pe, ok := err.(*texparse.ParseError); ok {
			resp.Key = pe.Key
			resp.Pos = pe.Pos
		}
		return resp
	}

	if h.CacheSize >= 0 {
		size := h.CacheSize
		if size == 0 {
			size = defaultCacheSize
		}
		h.mu.Lock()
		if len(h.cache) >= size {
			h.cache = map[uint64]string{}
		}
		h.cache[key] = mathml
		h.mu.Unlock()
	}
	return ConvertResponse{MathML: mathml}
}
