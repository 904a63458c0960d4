package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"salesdesk/internal/config"
)

func TestNew_UsesConfiguredTimeouts(t *testing.T) {
	srv := New(config.ServerConfig{Port: 9090, ReadTimeout: 4 * time.Second, WriteTimeout: 6 * time.Second}, http.NotFoundHandler(), zap.NewNop())

	assert.Equal(t, ":9090", srv.httpServer.Addr)
	assert.Equal(t, 4*time.Second, srv.httpServer.ReadTimeout)
	assert.Equal(t, 6*time.Second, srv.httpServer.WriteTimeout)
	assert.Equal(t, 12*time.Second, srv.httpServer.IdleTimeout)
}

func TestShutdown_BeforeStart(t *testing.T) {
	srv := New(config.ServerConfig{Port: 0}, http.NotFoundHandler(), zap.NewNop())

	assert.NoError(t, srv.Shutdown(context.Background()))
}
