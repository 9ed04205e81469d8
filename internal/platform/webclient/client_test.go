package webclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errors "github.com/cockroachdb/errors"
)

type scriptedUpstream struct {
	statuses []int
	bodies   []string
	calls    int
	agents   []string
}

func (s *scriptedUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx := s.calls
		if idx >= len(s.statuses) {
			idx = len(s.statuses) - 1
		}
		s.calls++
		s.agents = append(s.agents, r.Header.Get("User-Agent"))
		w.WriteHeader(s.statuses[idx])
		if idx < len(s.bodies) {
			_, _ = w.Write([]byte(s.bodies[idx]))
		}
	}
}

func newTestClient(t *testing.T, cfg Config, sleeps *[]time.Duration) *Client {
	t.Helper()
	c := New(cfg)
	c.sleep = func(_ context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	}
	return c
}

func namedProfiles(agents ...string) []HeaderProfile {
	out := make([]HeaderProfile, 0, len(agents))
	for _, agent := range agents {
		out = append(out, HeaderProfile{
			Name:    agent,
			Headers: map[string]string{"User-Agent": agent},
		})
	}
	return out
}

func TestNew_DoesNotMutateSharedHTTPClient(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	c := New(Config{HTTPClient: shared})

	if shared.Timeout != 0 {
		t.Fatalf("caller's client timeout changed to %s", shared.Timeout)
	}
	if c.httpClient == shared {
		t.Fatal("expected a copy when defaulting the timeout")
	}
	if c.httpClient.Timeout != defaultTimeout {
		t.Fatalf("client timeout = %s, want %s", c.httpClient.Timeout, defaultTimeout)
	}

	configured := &http.Client{Timeout: 5 * time.Second}
	if c := New(Config{HTTPClient: configured}); c.httpClient != configured {
		t.Fatal("a client with a timeout set should be used as-is")
	}
}

func TestGet_RotatesProfilesOn403(t *testing.T) {
	t.Parallel()

	upstream := &scriptedUpstream{
		statuses: []int{403, 403, 200},
		bodies:   []string{"", "", `{"ok":true}`},
	}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	var sleeps []time.Duration
	client := newTestClient(t, Config{
		Profiles:      namedProfiles("one", "two", "three"),
		MaxRetries:    0,
		RotationDelay: 600 * time.Millisecond,
	}, &sleeps)

	raw, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if len(sleeps) != 2 {
		t.Fatalf("expected exactly two waits, got %d", len(sleeps))
	}
	want := []string{"one", "two", "three"}
	for i, agent := range want {
		if upstream.agents[i] != agent {
			t.Fatalf("profile order: attempt %d used %q, want %q", i, upstream.agents[i], agent)
		}
	}
}

func TestGet_TransportRetriesWithExponentialBackoff(t *testing.T) {
	t.Parallel()

	upstream := &scriptedUpstream{
		statuses: []int{500, 502, 200},
		bodies:   []string{"", "", "payload"},
	}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	var sleeps []time.Duration
	client := newTestClient(t, Config{
		Profiles:    namedProfiles("only"),
		MaxRetries:  3,
		BackoffBase: 600 * time.Millisecond,
	}, &sleeps)

	raw, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(raw) != "payload" {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if len(sleeps) != 2 {
		t.Fatalf("expected two backoff waits, got %d", len(sleeps))
	}
	if sleeps[0] != 600*time.Millisecond || sleeps[1] != 1200*time.Millisecond {
		t.Fatalf("unexpected backoff schedule: %v", sleeps)
	}
}

func TestGet_All403IsTerminalTransportFailure(t *testing.T) {
	t.Parallel()

	upstream := &scriptedUpstream{statuses: []int{403}}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	var sleeps []time.Duration
	client := newTestClient(t, Config{
		Profiles:   namedProfiles("one", "two"),
		MaxRetries: 1,
	}, &sleeps)

	_, err := client.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected terminal error")
	}
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport classification, got %v", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 403 {
		t.Fatalf("expected 403 status error, got %v", err)
	}
	// Each profile ran its full retry cycle before rotating.
	if upstream.calls != 4 {
		t.Fatalf("expected 4 attempts (2 per profile), got %d", upstream.calls)
	}
}

func TestGet_Non403FailureShortCircuitsRotation(t *testing.T) {
	t.Parallel()

	upstream := &scriptedUpstream{statuses: []int{404}}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	var sleeps []time.Duration
	client := newTestClient(t, Config{
		Profiles:   namedProfiles("one", "two"),
		MaxRetries: 2,
	}, &sleeps)

	_, err := client.Get(context.Background(), srv.URL)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 404 {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	if upstream.calls != 1 {
		t.Fatalf("404 is not retryable, expected single attempt, got %d", upstream.calls)
	}
	if len(sleeps) != 0 {
		t.Fatalf("expected no waits, got %v", sleeps)
	}
}

func TestGet_NoProfilesConfigured(t *testing.T) {
	t.Parallel()

	client := New(Config{Profiles: []HeaderProfile{}})
	if _, err := client.Get(context.Background(), "http://127.0.0.1:0"); !errors.Is(err, ErrNoHeaderProfiles) {
		t.Fatalf("expected ErrNoHeaderProfiles, got %v", err)
	}
}

func TestGetJSON_DecodesPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Copa Libertadores"}`))
	}))
	defer srv.Close()

	var sleeps []time.Duration
	client := newTestClient(t, Config{Profiles: DefaultProfiles()}, &sleeps)

	var decoded struct {
		Name string `json:"name"`
	}
	if err := client.GetJSON(context.Background(), srv.URL, &decoded); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if decoded.Name != "Copa Libertadores" {
		t.Fatalf("unexpected decode result: %+v", decoded)
	}
}
