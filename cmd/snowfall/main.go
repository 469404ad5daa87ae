package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/snowfall"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML scene config")
	seed := flag.Uint64("seed", 0, "Random seed; 0 keeps the config value")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := snowfall.LoadSceneConfig(*configPath)
	if err != nil {
		snowfall.NewDefaultLogger("snowfall", false).Errorf("%v", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Snow.Seed = *seed
	}
	if *debug {
		cfg.Log.Debug = true
	}
	if cfg.Snow.Seed == 0 {
		cfg.Snow.Seed = uint64(time.Now().UnixNano())
	}

	snowfall.NewAppBuilder().
		UseStates(snowfall.StateRunning, snowfall.StateShutdown).
		UseModule(
			snowfall.LoggingModule{Prefix: cfg.Log.Prefix, Debug: cfg.Log.Debug},
			snowfall.TimeModule{},
			snowfall.AssetServerModule{},
			snowfall.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title),
			snowfall.SnowfallModule{
				Layout: cfg.Layout(),
				Params: cfg.Params(),
				Seed:   cfg.Snow.Seed,
			},
			snowfall.SnowRenderModule{
				Atlas: cfg.Snow.Atlas,
				Seed:  cfg.Snow.Seed,
			},
			snowfall.FrameStatsModule{Interval: cfg.StatsInterval},
		).
		Build().
		Run()
}
