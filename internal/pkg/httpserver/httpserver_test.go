package httpserver

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesOptions(t *testing.T) {
	opts := Options{
		Addr:              "127.0.0.1:0",
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       3 * time.Second,
		WriteTimeout:      4 * time.Second,
		IdleTimeout:       5 * time.Second,
		ShutdownTimeout:   6 * time.Second,
	}
	handler := http.NewServeMux()

	s := New("public", opts, handler)

	assert.Equal(t, "127.0.0.1:0", s.srv.Addr)
	assert.Same(t, handler, s.srv.Handler)
	assert.Equal(t, 2*time.Second, s.srv.ReadHeaderTimeout)
	assert.Equal(t, 3*time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 4*time.Second, s.srv.WriteTimeout)
	assert.Equal(t, 5*time.Second, s.srv.IdleTimeout)
	assert.Equal(t, 6*time.Second, s.shutdownTimeout)
}

func TestRun_CancelStopsServer(t *testing.T) {
	s := New("public", Options{Addr: "127.0.0.1:0", ShutdownTimeout: 500 * time.Millisecond}, http.NewServeMux())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s := New("admin", Options{Addr: ln.Addr().String()}, http.NewServeMux())

	err = s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin server")
}
