package cli

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/rileyhilliard/nerdminer/internal/api"
	"github.com/rileyhilliard/nerdminer/internal/config"
	"github.com/rileyhilliard/nerdminer/internal/errors"
	"github.com/rileyhilliard/nerdminer/internal/input"
	"github.com/rileyhilliard/nerdminer/internal/logger"
	"github.com/rileyhilliard/nerdminer/internal/network"
	"github.com/rileyhilliard/nerdminer/internal/supervisor"
	"github.com/rileyhilliard/nerdminer/internal/terminal"
	"github.com/rileyhilliard/nerdminer/internal/tui"
	"golang.org/x/term"
)

// shutdownTimeout bounds the status server's graceful shutdown.
const shutdownTimeout = 2 * time.Second

// frontEnd is a key source and display pair plus its teardown.
type frontEnd struct {
	keys    supervisor.KeyReader
	display supervisor.Display
	close   func() error
}

// dashboardCommand runs the dashboard until quit or ctx is cancelled.
func dashboardCommand(ctx context.Context, cfg *config.Config, stdin, stdout *os.File) error {
	restoreLog, err := redirectLog(cfg.Log.File)
	if err != nil {
		return err
	}
	defer restoreLog()

	lg := logger.NewEnvLogger("[nerdminer]")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mode := resolveMode(cfg.Display.Mode, isTerminal(stdin) && isTerminal(stdout))
	lg.Debug("front end: %s", mode)

	keyMap := input.DefaultKeyMap
	var front frontEnd
	if mode == config.ModeTUI {
		front = openTUI(cfg, keyMap, stdin, stdout, cancel)
	} else {
		front = openPlain(cfg, stdin, stdout, cancel, lg)
	}

	source := network.NewHTTPSource(cfg.Network)
	sup := supervisor.New(cfg, source, front.keys, front.display,
		supervisor.WithKeyMap(keyMap),
		supervisor.WithLogger(lg))

	if cfg.Status.Addr != "" {
		srv := api.NewServer(cfg.Status.Addr, sup,
			api.WithPushInterval(cfg.Display.FrameInterval),
			api.WithLogger(lg))
		if err := srv.Start(); err != nil {
			_ = front.close()
			return err
		}
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer scancel()
			if err := srv.Shutdown(sctx); err != nil {
				lg.Warn("status server shutdown: %v", err)
			}
		}()
	}

	runErr := sup.Run(ctx)
	if err := front.close(); err != nil && runErr == nil {
		runErr = errors.WrapWithCode(err, errors.ErrTerminal,
			"Failed to restore the terminal",
			"Run 'reset' if the terminal misbehaves")
	}
	return runErr
}

// resolveMode picks the front end. Auto uses the TUI only when both ends
// are terminals.
func resolveMode(mode string, interactive bool) string {
	switch mode {
	case config.ModeTUI, config.ModePlain:
		return mode
	}
	if interactive {
		return config.ModeTUI
	}
	return config.ModePlain
}

func openTUI(cfg *config.Config, keyMap input.KeyMap, stdin, stdout *os.File, cancel context.CancelFunc) frontEnd {
	theme := terminal.NewTheme(stdout, terminal.Profile(stdout, cfg.Display.Color))
	p := tui.Start(tui.Options{
		Input:       stdin,
		Output:      stdout,
		Trail:       stdout,
		Theme:       theme,
		KeyMap:      keyMap,
		AltScreen:   true,
		OnInterrupt: cancel,
	})
	return frontEnd{keys: p, display: p, close: p.Close}
}

func openPlain(cfg *config.Config, stdin, stdout *os.File, cancel context.CancelFunc, lg logger.Logger) frontEnd {
	theme := terminal.NewTheme(stdout, terminal.Profile(stdout, cfg.Display.Color))

	var keys supervisor.KeyReader = terminal.IdleKeyReader{}
	closeKeys := func() error { return nil }
	raw := false

	kr, err := terminal.OpenKeyReader(stdin,
		terminal.WithInterrupt(cancel),
		terminal.WithKeyLogger(lg))
	if err != nil {
		lg.Warn("keyboard input unavailable, buttons disabled: %v", err)
	} else {
		keys, closeKeys, raw = kr, kr.Close, kr.Raw()
	}

	d := terminal.NewDisplay(stdout, theme, terminal.WithRawNewlines(raw))
	d.Open()

	return frontEnd{
		keys:    keys,
		display: d,
		close: func() error {
			derr := d.Close()
			if err := closeKeys(); err != nil {
				return err
			}
			return derr
		},
	}
}

// redirectLog keeps log output off the screen the dashboard owns.
// The returned func restores the previous writer.
func redirectLog(path string) (func(), error) {
	prev := log.Writer()
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file: "+path,
			"Check that log.file points to a writable location")
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		f.Close()
	}, nil
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
