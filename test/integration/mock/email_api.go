package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// EmailAPI is a fake of the email provider's HTTP API. It records every request body
// per method and path and answers with a configurable status and JSON body.
type EmailAPI struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]map[string]any
	headers   map[string][]http.Header
	responses map[string]response
}

type response struct {
	status int
	body   any
}

func NewEmailAPI() *EmailAPI {
	return &EmailAPI{
		requests:  map[string][]map[string]any{},
		headers:   map[string][]http.Header{},
		responses: map[string]response{},
	}
}

func (a *EmailAPI) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *EmailAPI) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *EmailAPI) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

func (a *EmailAPI) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], request)
	a.headers[key] = append(a.headers[key], r.Header.Clone())
	resp, ok := a.responses[key]
	a.mu.Unlock()

	if !ok || resp.status == 0 {
		resp = response{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// SetResponse sets the answer for every later request to method and path.
func (a *EmailAPI) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = response{status: status, body: body}
}

// Requests returns the bodies received on method and path, oldest first.
func (a *EmailAPI) Requests(method, path string) []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]map[string]any, len(a.requests[method+path]))
	copy(out, a.requests[method+path])
	return out
}

// LastHeaders returns the headers of the latest request on method and path.
func (a *EmailAPI) LastHeaders(method, path string) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	h := a.headers[method+path]
	if len(h) == 0 {
		return nil
	}
	return h[len(h)-1]
}

func (a *EmailAPI) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = map[string][]map[string]any{}
	a.headers = map[string][]http.Header{}
	a.responses = map[string]response{}
}
