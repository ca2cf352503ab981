package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest captures one call made against the fake prediction API.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Body        []byte
}

// Decoded unmarshals the recorded JSON body into a generic map.
func (r RecordedRequest) Decoded(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(r.Body, &out); err != nil {
		t.Fatalf("decode recorded body %q: %v", r.Body, err)
	}
	return out
}

// PredictionAPI is an httptest server standing in for the prediction
// service. The response is fixed per server unless Respond is swapped.
type PredictionAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	status   int
	body     string
	gate     chan struct{}
}

// NewPredictionAPI starts a fake API replying with status and body.
func NewPredictionAPI(t *testing.T, status int, body string) *PredictionAPI {
	t.Helper()
	api := &PredictionAPI{status: status, body: body}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

// Respond replaces the canned response.
func (a *PredictionAPI) Respond(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
	a.body = body
}

// Hold makes subsequent requests block until the returned release func runs.
func (a *PredictionAPI) Hold() (release func()) {
	gate := make(chan struct{})
	a.mu.Lock()
	a.gate = gate
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// Requests returns a copy of the recorded requests.
func (a *PredictionAPI) Requests() []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]RecordedRequest(nil), a.requests...)
}

func (a *PredictionAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.requests = append(a.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Body:        body,
	})
	status, payload, gate := a.status, a.body, a.gate
	a.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if status >= 200 && status < 300 {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, payload)
}

// UnreachableURL returns a base URL nothing is listening on.
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
