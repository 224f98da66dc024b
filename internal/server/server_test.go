package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_NotInitialized(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{Logger: &logger}

	assert.Error(t, s.Start())
}

func TestShutdown_ReleasesAfterHTTPFailure(t *testing.T) {
	logger := zerolog.Nop()

	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &Server{
		Logger: &logger,
		Redis:  redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}),
		httpServer: &http.Server{
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				close(entered)
				<-release
			}),
		},
	}

	go func() { _ = s.httpServer.Serve(ln) }()
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err == nil {
			_ = resp.Body.Close()
		}
	}()
	<-entered

	// The in-flight request keeps the connection active, so a cancelled
	// context makes the HTTP shutdown fail.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Shutdown(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	assert.ErrorIs(t, s.Redis.Ping(context.Background()).Err(), redis.ErrClosed)
}

func TestShutdown_NothingToRelease(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{Logger: &logger}

	assert.NoError(t, s.Shutdown(context.Background()))
}
