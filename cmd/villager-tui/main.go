// Command villager-tui runs the village in a terminal. It shares the hook
// server and controller with the windowed app.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/villager/configs"
	"github.com/younwookim/villager/internal/application/replay"
	"github.com/younwookim/villager/internal/application/session"
	"github.com/younwookim/villager/internal/application/system"
	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/bridge"
	"github.com/younwookim/villager/internal/infrastructure/config"
	"github.com/younwookim/villager/internal/infrastructure/terminal"
)

// frameRate is the terminal redraw and simulation rate
const frameRate = 30

func main() {
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	addrFlag := flag.String("addr", "", "Hook server address (overrides game.json)")
	noBridge := flag.Bool("no-bridge", false, "Disable the hook server")
	logFile := flag.String("log", "", "Write logs to file (the terminal is busy)")
	flag.Parse()

	logger, closeLog, err := openLog(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := newLoader(*configDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Settings.Bridge.Addr = *addrFlag
	}
	if *noBridge {
		cfg.Settings.Bridge.Enabled = false
	}

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "", log.LstdFlags), func() { _ = f.Close() }, nil
}

func newLoader(dir string) *config.Loader {
	if dir != "" {
		return config.NewLoader(dir)
	}
	return config.NewFSLoader(configs.FS, "configs")
}

func run(cfg *config.GameConfig, logger *log.Logger) error {
	ctrlCfg, err := system.ControllerConfig(cfg.Villager)
	if err != nil {
		return fmt.Errorf("failed to build sites: %w", err)
	}
	router := system.NewTriggerRouter(system.SeedFromClock(time.Now()))

	opts := []session.Option{session.WithLogger(logger)}
	var triggers <-chan villager.Trigger
	if cfg.Settings.Bridge.Enabled {
		srv := bridge.New(bridge.Config{
			Addr:      cfg.Settings.Bridge.Addr,
			QueueSize: cfg.Settings.Bridge.QueueSize,
			Logger:    logger,
		})
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		opts = append(opts, session.WithPublisher(srv))
		triggers = srv.Triggers()
	}
	sess := session.New(villager.NewController(ctrlCfg), router, opts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	renderer := terminal.NewRenderer(system.LoadStage(cfg.Stage))

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	dt := 1.0 / frameRate

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !handleKey(sess, terminal.ActionFor(ev)) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			drainTriggers(sess, triggers)
			renderer.Render(screen, sess.Step(dt, 1))
		}
	}
}

// handleKey applies a keyboard action; it returns false on quit
func handleKey(sess *session.Session, action terminal.Action) bool {
	switch action {
	case terminal.ActionGold:
		sess.Command(replay.CommandGold)
	case terminal.ActionTree:
		sess.Command(replay.CommandWood)
	case terminal.ActionReturn:
		sess.Command(replay.CommandReturn)
	case terminal.ActionQuit:
		return false
	}
	return true
}

func drainTriggers(sess *session.Session, ch <-chan villager.Trigger) {
	for {
		select {
		case t, ok := <-ch:
			if !ok {
				return
			}
			sess.Trigger(t)
		default:
			return
		}
	}
}
