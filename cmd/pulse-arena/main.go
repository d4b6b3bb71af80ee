package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulse-arena/audio"
	"github.com/lixenwraith/pulse-arena/config"
	"github.com/lixenwraith/pulse-arena/core"
	"github.com/lixenwraith/pulse-arena/engine"
	"github.com/lixenwraith/pulse-arena/render"
	"github.com/lixenwraith/pulse-arena/system"
)

var (
	configFlag = flag.String("config", "", "YAML file overriding the embedded defaults")
	logFlag    = flag.String("log", "", "Log file path; empty disables logging")
	seedFlag   = flag.Uint64("seed", 0, "Session seed; 0 keeps the configured seed")
	muteFlag   = flag.Bool("mute", false, "Start without audio output")
	volumeFlag = flag.Float64("volume", 0.6, "Master volume in [0,1]")
)

func main() {
	flag.Parse()

	logFile, err := setupLogging(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log setup failed: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPULSE-ARENA CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	hud := render.NewHUD(screen)
	sinks := engine.CueFanout{hud}

	synth := audio.NewCueSynth(*volumeFlag)
	if !*muteFlag {
		if err := synth.Initialize(); err != nil {
			log.Printf("audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer synth.Cleanup()
			sinks = append(sinks, synth)
		}
	}

	arena := system.NewArena(cfg, nil, sinks, log.Default())
	arena.Register(hud)
	log.Printf("session start: seed=%d bpm=%.1f", cfg.Seed, cfg.Clock.BPM)

	run(screen, arena, hud, synth)
}

// run drives input, simulation and drawing from one goroutine; only the poller runs beside it
func run(screen tcell.Screen, arena *system.Arena, hud *render.HUD, synth *audio.CueSynth) {
	events := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(arena.Context().Config.NominalTick())
	defer ticker.Stop()

	var aim core.Vec2
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				act, dir := decodeKey(ev)
				switch act {
				case actQuit:
					return
				case actMove:
					arena.Move(dir)
				case actStop:
					arena.Move(core.Vec2{})
				case actFire:
					aim = dir
					arena.Fire(dir)
				case actSlash:
					arena.Slash(aim)
				case actPause:
					if arena.Paused() {
						arena.Resume()
					} else {
						arena.Pause()
					}
				case actRestart:
					arena.Restart()
				case actTempoUp:
					arena.SetTempo(arena.Context().Clock.BPM() + tempoStep)
				case actTempoDown:
					arena.SetTempo(arena.Context().Clock.BPM() - tempoStep)
				case actMute:
					synth.ToggleMute()
				}
			}

		case <-ticker.C:
			if !arena.PlayerDown() {
				arena.Tick()
			}
			hud.Draw(arena)
		}
	}
}
