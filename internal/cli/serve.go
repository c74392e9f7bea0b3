package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devserve/internal/config"
	"github.com/shinji-kodama/devserve/internal/model"
	"github.com/shinji-kodama/devserve/internal/port"
	"github.com/shinji-kodama/devserve/internal/server"
)

// serveFlags holds the flag values of the root command.
// These are bound to cobra flags in register.
type serveFlags struct {
	// configPath is an optional YAML/JSON/JSONC/TOML config file.
	configPath string

	// dir is the document root.
	dir string

	// host is the bind address; empty means all interfaces.
	host string

	// ports is the comma-separated candidate list.
	ports string

	// api enables the ISO catalogue.
	api bool

	// check prints candidate availability and exits without serving.
	check bool

	// shutdownGrace bounds the drain phase after an interrupt.
	shutdownGrace time.Duration
}

func (f *serveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (.yaml, .yml, .json, .jsonc, .toml)")
	cmd.Flags().StringVar(&f.dir, "dir", ".", "Directory to serve")
	cmd.Flags().StringVar(&f.host, "host", "", "Bind address (default: all interfaces)")
	cmd.Flags().StringVar(&f.ports, "ports", port.FormatCandidates(model.DefaultCandidatePorts),
		"Comma-separated candidate ports, tried in order")
	cmd.Flags().BoolVar(&f.api, "api", false, "Serve the ISO catalogue under /api")
	cmd.Flags().BoolVar(&f.check, "check", false, "Report which candidate ports are free and exit")
	cmd.Flags().DurationVar(&f.shutdownGrace, "shutdown-grace", 0,
		"Time in-flight requests may run after Ctrl+C (0: stop immediately)")
}

// resolveConfig merges defaults, the optional config file, and the flags
// the user set explicitly, in that order of precedence.
func resolveConfig(cmd *cobra.Command, f *serveFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		VerboseLog("Loaded config file %s", f.configPath)
	}

	changed := cmd.Flags().Changed
	if changed("dir") {
		cfg.Root = f.dir
	}
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("ports") {
		ports, err := port.ParseCandidates(f.ports)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "invalid --ports", err)
		}
		cfg.Ports = ports
	}
	if changed("api") {
		cfg.API = f.api
	}
	if changed("shutdown-grace") {
		cfg.ShutdownGrace = config.Duration(f.shutdownGrace)
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", cfg.Root, err)
	}
	cfg.Root = abs
	return cfg, nil
}

// runServe is the main logic of the root command: pick a port, serve until
// ctx is cancelled, report the shutdown.
func runServe(ctx context.Context, cmd *cobra.Command, f *serveFlags) error {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	out := cmd.OutOrStdout()
	if f.check {
		rows := port.NewScanner().Check(cfg.Host, cfg.Ports)
		for _, row := range rows {
			VerboseLog("Candidate %s", row)
		}
		printCheckResult(out, rows)
		return nil
	}

	rep := newReporter(out)

	// Step 1: bind the first free candidate, one attempt at a time.
	VerboseLog("Trying candidate ports %s", port.FormatCandidates(cfg.Ports))
	ln, boundPort, err := port.NewScanner().Bind(ctx, cfg.Host, cfg.Ports, rep.portUnavailable)
	if err != nil {
		var exhausted *model.AllPortsExhaustedError
		if errors.As(err, &exhausted) {
			rep.exhausted(exhausted)
			return model.WrapCLIError(model.ExitPortsExhausted, "failed to start server", err)
		}
		if ctx.Err() != nil {
			// Interrupted before any port was bound.
			return nil
		}
		return err
	}

	rep.listening(boundPort, cfg.Root, browseURL(cfg.Host, boundPort))

	// Step 2: serve until interrupted.
	srv := server.New(server.Options{Root: cfg.Root, API: cfg.API}, cfg.ShutdownGrace.Std(), logger)
	if err := srv.Serve(ctx, ln); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("server on port %d failed", boundPort), err)
	}

	// Step 3: the socket is released; confirm.
	rep.stopped(boundPort)
	return nil
}

// browseURL returns the address an operator should open. Wildcard binds
// are shown as localhost.
func browseURL(host string, p int) string {
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(p))
}
