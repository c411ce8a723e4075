package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cinetix-cli/fakeapi"
)

const (
	demoName     = "Demo User"
	demoEmail    = "demo@cinetix.dev"
	demoPassword = "demo1234"
)

// startDemo serves the fixture API on a random loopback port and returns its
// base URL and a stop function.
func startDemo(log *zap.Logger) (string, func(), error) {
	api := fakeapi.New(fakeapi.WithLogger(log))
	if _, err := api.AddUser(demoName, demoEmail, demoPassword); err != nil {
		return "", nil, err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("demo api stopped", zap.Error(err))
		}
	}()

	baseURL := "http://" + ln.Addr().String()
	log.Info("demo api listening", zap.String("base_url", baseURL))

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("demo api shutdown", zap.Error(err))
		}
	}
	return baseURL, stop, nil
}
