package http

import (
	"net/http"
	"time"
)

// NewServer wraps the router in an http.Server so callers own the
// listen/shutdown lifecycle instead of gin's blocking Run.
func NewServer(addr string, cfg RouterConfig) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
