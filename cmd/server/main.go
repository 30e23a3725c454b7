package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/ganot/issue-tracker/internal/config"
	"github.com/ganot/issue-tracker/internal/domain/issue"
	"github.com/ganot/issue-tracker/internal/domain/project"
	"github.com/ganot/issue-tracker/internal/logging"
	"github.com/ganot/issue-tracker/internal/mcp"
	"github.com/ganot/issue-tracker/internal/memory"
	"github.com/ganot/issue-tracker/internal/sqlite"
	"github.com/ganot/issue-tracker/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	port       int
	store      string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "issue-tracker",
		Short:         "Issue tracking JSON API with an MCP tool surface",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	bindFlags(cmd.Flags(), &f)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.IntVar(&f.port, "port", 0, "listen port (overrides config)")
	fs.StringVar(&f.store, "store", "", "store driver: memory or sqlite (overrides config)")
}

// loadConfig layers explicitly set flags over file and environment configuration.
func loadConfig(fs *pflag.FlagSet, f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if fs.Changed("port") {
		cfg.Server.Port = f.port
	}
	if fs.Changed("store") {
		cfg.Store.Driver = f.store
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	logger, closeLog, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	stores, err := openStores(cfg.Store)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		return err
	}
	defer stores.Close()

	issueSvc := issue.NewService(stores.issues, logger)
	projectSvc := project.NewService(stores.projects, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Issues:   issueSvc,
		Projects: projectSvc,
		Version:  version,
		Logger:   logger,
	})

	if cfg.Transport.Mode == config.ModeStdio {
		return runStdioMode(ctx, logger, mcpServer)
	}

	handler := newHTTPHandler(issueSvc, projectSvc, mcpServer, transport.Options{
		StrictStatus: cfg.HTTP.StrictStatus,
		Logger:       logger,
	})
	return runHTTPMode(ctx, logger, handler, cfg.Server)
}

// newHTTPHandler mounts the MCP streamable HTTP endpoint next to the issue API.
func newHTTPHandler(issues *issue.Service, projects *project.Service, mcpServer *sdkmcp.Server, opts transport.Options) http.Handler {
	router := transport.NewServer(issues, projects, opts)
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)
	return router
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "version", version)

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, cfg config.ServerConfig) error {
	addr := cfg.Host + ":" + strconv.Itoa(cfg.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

type stores struct {
	issues   issue.Repository
	projects project.Repository
	closer   io.Closer
}

func (s stores) Close() error {
	return s.closer.Close()
}

func openStores(cfg config.StoreConfig) (stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		store := memory.New()
		return stores{issues: store, projects: store, closer: store}, nil
	case config.DriverSQLite:
		if err := ensureDBDir(cfg.DSN); err != nil {
			return stores{}, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			issues:   sqlite.NewIssueRepository(db),
			projects: sqlite.NewProjectRepository(db),
			closer:   db,
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func ensureDBDir(dsn string) error {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
