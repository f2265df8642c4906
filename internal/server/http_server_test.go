package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingListener struct{}

func (failingListener) Accept() (net.Conn, error) { return nil, errors.New("accept failure") }
func (failingListener) Close() error              { return nil }
func (failingListener) Addr() net.Addr            { return &net.TCPAddr{IP: net.IPv4zero} }

func TestNewNetHTTPServerAppliesTimeouts(t *testing.T) {
	handler := http.NewServeMux()
	s := newNetHTTPServer("8080", handler)

	assert.Equal(t, ":8080", s.Addr())
	assert.Same(t, handler, s.Handler())
	assert.Equal(t, readTimeout, s.srv.ReadTimeout)
	assert.Equal(t, readHeaderTimeout, s.srv.ReadHeaderTimeout)
	assert.Equal(t, writeTimeout, s.srv.WriteTimeout)
	assert.Equal(t, idleTimeout, s.srv.IdleTimeout)
}

func TestNetHTTPServerServesOnListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	s := newNetHTTPServer("0", mux)
	s.listener = ln

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	require.NoError(t, s.Shutdown(context.Background()))
	select {
	case err := <-done:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(time.Second):
		t.Fatal("serve did not return after shutdown")
	}
}

func TestNetHTTPServerListenerError(t *testing.T) {
	s := newNetHTTPServer("0", http.NewServeMux())
	s.listener = failingListener{}

	assert.EqualError(t, s.ListenAndServe(), "accept failure")
}

func TestNetHTTPServerWithoutListener(t *testing.T) {
	s := netHTTPServer{srv: &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}}
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	time.Sleep(50 * time.Millisecond)
	_ = s.Shutdown(context.Background())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listen did not return after shutdown")
	}
}
