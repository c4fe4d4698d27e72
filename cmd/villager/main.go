package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/villager/configs"
	"github.com/younwookim/villager/internal/application/game"
	"github.com/younwookim/villager/internal/application/replay"
	"github.com/younwookim/villager/internal/application/scene/village"
	"github.com/younwookim/villager/internal/application/session"
	"github.com/younwookim/villager/internal/application/system"
	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/audio"
	"github.com/younwookim/villager/internal/infrastructure/bridge"
	"github.com/younwookim/villager/internal/infrastructure/config"
	"github.com/younwookim/villager/internal/infrastructure/hooks"
)

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Config directory to load and watch (default: embedded configs)")
	recordFlag := flag.String("record", "", "Record triggers to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play a recorded trigger log headless and print the final state")
	addrFlag := flag.String("addr", "", "Hook server address (overrides game.json)")
	noBridge := flag.Bool("no-bridge", false, "Disable the hook server")
	setupHooks := flag.Bool("setup-hooks", false, "Install agent hooks into the settings file and exit")
	removeHooks := flag.Bool("remove-hooks", false, "Remove agent hooks from the settings file and exit")
	checkHooks := flag.Bool("check-hooks", false, "Report whether agent hooks are installed and exit")
	settingsPath := flag.String("settings", "", "Agent settings file (default: ~/.claude/settings.json)")
	flag.Parse()

	loader := newLoader(*configDir)
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Settings.Bridge.Addr = *addrFlag
	}

	// Hooks call the address the bridge will listen on
	if *setupHooks || *removeHooks || *checkHooks {
		if err := runHooks(*settingsPath, cfg.Settings.Bridge.Addr, *setupHooks, *removeHooks); err != nil {
			log.Fatalf("Failed to update hooks: %v", err)
		}
		return
	}

	if *replayFlag != "" {
		if err := runReplay(cfg, *replayFlag, os.Stdout); err != nil {
			log.Fatalf("Failed to replay: %v", err)
		}
		return
	}

	if *noBridge {
		cfg.Settings.Bridge.Enabled = false
	}

	if err := run(cfg, loader, *configDir, *recordFlag); err != nil {
		log.Fatal(err)
	}
}

func newLoader(dir string) *config.Loader {
	if dir != "" {
		return config.NewLoader(dir)
	}
	// Load configurations using embedded filesystem
	return config.NewFSLoader(configs.FS, "configs")
}

func runHooks(path, addr string, install, remove bool) error {
	port, err := hooks.PortFromAddr(addr)
	if err != nil {
		return err
	}
	if path == "" {
		p, err := hooks.DefaultSettingsPath()
		if err != nil {
			return err
		}
		path = p
	}
	inst := hooks.NewInstaller(path)
	inst.Port = port

	switch {
	case install:
		if err := inst.Install(); err != nil {
			return err
		}
		log.Printf("Hooks configured at %s", path)
	case remove:
		if err := inst.Remove(); err != nil {
			return err
		}
		log.Printf("Hooks removed from %s", path)
	default:
		ok, err := inst.Configured()
		if err != nil {
			return err
		}
		fmt.Println(ok)
	}
	return nil
}

func run(cfg *config.GameConfig, loader *config.Loader, watchDir, recordFilename string) error {
	settings := cfg.Settings

	ctrlCfg, err := system.ControllerConfig(cfg.Villager)
	if err != nil {
		return fmt.Errorf("failed to build sites: %w", err)
	}
	ctrl := villager.NewController(ctrlCfg)
	router := system.NewTriggerRouter(system.SeedFromClock(time.Now()))

	var sessOpts []session.Option
	var sceneOpts []village.Option

	// Recording
	if recordFilename != "" {
		rec := replay.NewRecorder(router.Last(), settings.Stage)
		sessOpts = append(sessOpts, session.WithRecorder(rec))
		sceneOpts = append(sceneOpts, village.WithRecording(rec, recordFilename))
		log.Printf("Recording enabled: %s (initial: %s)", recordFilename, router.Last())
	}

	// Hook server
	if settings.Bridge.Enabled {
		srv := bridge.New(bridge.Config{Addr: settings.Bridge.Addr, QueueSize: settings.Bridge.QueueSize})
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		sessOpts = append(sessOpts, session.WithPublisher(srv))
		sceneOpts = append(sceneOpts, village.WithTriggers(srv.Triggers()))
	}

	sess := session.New(ctrl, router, sessOpts...)

	// Audio is optional; the game runs silent without a device
	if settings.Audio.Enabled {
		rate := beep.SampleRate(settings.Audio.SampleRate)
		sink, err := audio.NewSpeakerSink(rate)
		if err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sink.Close()
			cues := audio.NewCuePlayer(sink, rate, settings.Audio.Volume, nil)
			sess.OnTransition(cues.OnTransition)
		}
	}

	// Hot reload only works for a real directory
	if watchDir != "" {
		w, err := config.NewWatcher(watchDir)
		if err != nil {
			log.Printf("Config watch disabled: %v", err)
		} else {
			defer w.Close()
			go func() {
				for err := range w.Errors {
					log.Printf("Config watch error: %v", err)
				}
			}()
			sceneOpts = append(sceneOpts, village.WithReload(loader, w.Events))
		}
	}

	sceneOpts = append(sceneOpts, village.WithPanel(village.NewPanel()))
	stage := system.LoadStage(cfg.Stage)
	scn := village.New(settings, stage, sess, sceneOpts...)

	g := game.New(scn, settings.Display.ScreenWidth, settings.Display.ScreenHeight)
	g.SetTPS(settings.Display.Framerate)

	// Set up ebiten
	ebiten.SetWindowSize(settings.Display.ScreenWidth, settings.Display.ScreenHeight)
	ebiten.SetWindowTitle(settings.Display.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(settings.Display.Framerate)

	// Run game
	err = ebiten.RunGame(g)
	scn.OnExit()
	return err
}
