// Package testkit provides test doubles for vitrine's outgoing HTTP calls.
package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// ─── MockTransport ────────────────────────────────────────────────────────────

// MockTransport implements http.RoundTripper.
// It matches outgoing HTTP requests against registered stubs and returns
// synthetic responses instead of making real network calls.
//
// Install it on the shared HTTP client before the test:
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("/products/10", 200, `{"product_id":10}`)
//	httpclient.DefaultClient.Transport = mt
//	defer httpclient.ResetTransport()
//	// ... run test ...
//	mt.AssertAllCalled(t)
type MockTransport struct {
	mu    sync.Mutex
	stubs []*stub
}

type stub struct {
	urlPart   string
	status    int
	body      string
	callCount int
}

// NewMockTransport builds an empty MockTransport. Requests with no matching
// stub receive a 404 with an explanatory body.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers a canned response for any request whose URL contains urlPart.
// Stubs are matched in registration order.
func (mt *MockTransport) Stub(urlPart string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &stub{urlPart: urlPart, status: status, body: body})
	return mt
}

// Fail registers a transport-level failure for any request whose URL contains
// urlPart (simulates a network error rather than an HTTP status).
func (mt *MockTransport) Fail(urlPart string) *MockTransport {
	return mt.Stub(urlPart, -1, "")
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if !strings.Contains(req.URL.String(), s.urlPart) {
			continue
		}
		s.callCount++

		if s.status < 0 {
			return nil, fmt.Errorf("testkit: simulated network failure for %s", req.URL)
		}

		header := make(http.Header)
		header.Set("Content-Type", "application/json")
		return &http.Response{
			StatusCode: s.status,
			Status:     fmt.Sprintf("%d %s", s.status, http.StatusText(s.status)),
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(s.body)),
			Request:    req,
		}, nil
	}

	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(`{"error":"no stub configured"}`)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// Calls returns how many requests matched the stub registered for urlPart.
func (mt *MockTransport) Calls(urlPart string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, s := range mt.stubs {
		if s.urlPart == urlPart {
			return s.callCount
		}
	}
	return 0
}

// AssertAllCalled verifies that every registered stub was hit at least once.
func (mt *MockTransport) AssertAllCalled(t *testing.T) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, s := range mt.stubs {
		if s.callCount == 0 {
			t.Errorf("testkit: stub %q was never called", s.urlPart)
		}
	}
}
