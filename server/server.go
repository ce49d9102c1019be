package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/modworks/modserve/config"
	"golang.org/x/sync/errgroup"
)

// Daemon is a long-running component tied to the server's lifetime, like the
// manifest watcher or the file watcher driving live reload.
type Daemon interface {
	Name() string
	Start() error
	Stop(ctx context.Context) error
}

type Server struct {
	configProvider *config.Provider
	handler        http.Handler
	logger         *slog.Logger
	reloadFunc     func() error
	daemons        []Daemon

	// exitFunc is os.Exit unless a test replaces it.
	exitFunc func(int)
	// openFunc opens a URL in the browser; replaceable in tests.
	openFunc func(string)
}

// NewServer creates a Server. reloadFunc runs on SIGHUP to re-read the
// configuration file; pass nil to ignore the signal.
func NewServer(provider *config.Provider, handler http.Handler, logger *slog.Logger, reloadFunc func() error) *Server {
	s := &Server{
		configProvider: provider,
		handler:        handler,
		logger:         logger,
		reloadFunc:     reloadFunc,
		exitFunc:       os.Exit,
	}
	s.openFunc = func(url string) { openBrowser(url, logger) }
	return s
}

// AddDaemon registers a daemon started before the listener binds and stopped
// during graceful shutdown.
func (s *Server) AddDaemon(d Daemon) {
	s.daemons = append(s.daemons, d)
}

// Run starts the daemons and the HTTP server, then blocks until a shutdown
// signal or a server error, shutting everything down gracefully. It ends the
// process through exitFunc.
func (s *Server) Run() {
	cfg := s.configProvider.Get()

	s.logger.Info("server configuration",
		"addr", cfg.Server.Addr(),
		"root", cfg.Root,
		"wait", cfg.Wait.Duration,
		"shutdown_timeout", cfg.Server.ShutdownGracefulTimeout.Duration,
	)

	started := make([]Daemon, 0, len(s.daemons))
	for _, d := range s.daemons {
		if err := d.Start(); err != nil {
			s.logger.Error("daemon failed to start", "daemon", d.Name(), "err", err)
			_ = s.stopDaemons(context.Background(), started)
			s.exitFunc(1)
			return
		}
		s.logger.Info("daemon started", "daemon", d.Name())
		started = append(started, d)
	}

	// Bind explicitly so startup failures surface before anything is served.
	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		s.logger.Error("failed to bind listen address", "addr", cfg.Server.Addr(), "err", err)
		_ = s.stopDaemons(context.Background(), started)
		s.exitFunc(1)
		return
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       cfg.Server.ReadTimeout.Duration,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Duration,
		WriteTimeout:      cfg.Server.WriteTimeout.Duration,
		IdleTimeout:       cfg.Server.IdleTimeout.Duration,
	}

	serverError := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	if cfg.Open != "" {
		s.openFunc(openURL(cfg))
	}

	sigHup := make(chan os.Signal, 1)
	signal.Notify(sigHup, syscall.SIGHUP)
	defer signal.Stop(sigHup)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

wait:
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("received shutdown signal - gracefully shutting down")
			break wait
		case err := <-serverError:
			s.logger.Error("server error - initiating shutdown", "err", err)
			break wait
		case <-sigHup:
			if s.reloadFunc == nil {
				continue
			}
			if err := s.reloadFunc(); err != nil {
				s.logger.Error("config reload failed", "err", err)
			} else {
				s.logger.Info("config reloaded")
			}
		}
	}
	stop()

	gracefulCtx, cancelShutdown := context.WithTimeout(
		context.Background(), cfg.Server.ShutdownGracefulTimeout.Duration)
	defer cancelShutdown()

	shutdownGroup, _ := errgroup.WithContext(gracefulCtx)

	shutdownGroup.Go(func() error {
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		s.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	shutdownGroup.Go(func() error {
		return s.stopDaemons(gracefulCtx, started)
	})

	if err := shutdownGroup.Wait(); err != nil {
		s.logger.Error("error during shutdown", "err", err)
		s.exitFunc(1)
		return
	}

	s.logger.Info("all systems stopped gracefully")
	s.exitFunc(0)
}

func (s *Server) stopDaemons(ctx context.Context, daemons []Daemon) error {
	g, _ := errgroup.WithContext(ctx)
	for _, d := range daemons {
		g.Go(func() error {
			if err := d.Stop(ctx); err != nil {
				s.logger.Error("daemon shutdown error", "daemon", d.Name(), "err", err)
				return err
			}
			s.logger.Info("daemon stopped", "daemon", d.Name())
			return nil
		})
	}
	return g.Wait()
}

func openURL(cfg *config.Config) string {
	return fmt.Sprintf("http://localhost:%d/%s",
		cfg.Server.Port, strings.TrimPrefix(cfg.Open, "/"))
}

func openBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Debug("could not open browser", "url", url, "err", err)
	}
}
