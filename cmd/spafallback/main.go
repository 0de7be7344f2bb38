// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// spafallback serves a single page application's build output directory,
// falling back to its index.html for any path that doesn't match a file.
//
// It is configured through environment variables, optionally read from a
// .env file in the current working directory:
//
//	SPA_ADDR=:8000 SPA_ROOT=./dist spafallback
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/thediveo/spafallback"
	"github.com/thediveo/spafallback/internal/config"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	log := cfg.NewLogger(os.Stderr)

	l, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Error("cannot listen", slog.String("addr", cfg.Addr), slog.Any("error", err))
		os.Exit(1)
	}
	if err := serve(ctx, l, cfg, log); err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newHandler returns the static asset handler for the configured root
// directory. A missing or inaccessible root isn't fatal, it just results in
// 404s and 500s.
func newHandler(cfg config.Config, log *slog.Logger) http.Handler {
	if info, err := os.Stat(cfg.Root); err != nil {
		log.Warn("root directory not accessible", slog.String("root", cfg.Root), slog.Any("error", err))
	} else if !info.IsDir() {
		log.Warn("root is not a directory", slog.String("root", cfg.Root))
	}
	opts := []spafallback.HandlerOption{
		spafallback.WithLogger(log),
		spafallback.WithResolverOptions(spafallback.WithIndex(cfg.Index)),
	}
	if cfg.Base != "" {
		opts = append(opts, spafallback.WithIndexRewriter(spafallback.BaseRewriter(cfg.Base)))
	}
	return spafallback.NewHandler(os.DirFS(cfg.Root), opts...)
}

// serve serves static assets on the specified listener until the context gets
// cancelled, then gracefully shuts down within the configured timeout.
func serve(ctx context.Context, l net.Listener, cfg config.Config, log *slog.Logger) error {
	srv := &http.Server{
		Handler:      newHandler(cfg, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info(fmt.Sprintf("serving %s on http://localhost%s", cfg.Root, portOf(l.Addr())),
			slog.String("addr", l.Addr().String()))
		if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// portOf returns ":port" of the specified address, or an empty string if
// there's no port.
func portOf(addr net.Addr) string {
	if _, port, err := net.SplitHostPort(addr.String()); err == nil {
		return ":" + port
	}
	return ""
}
