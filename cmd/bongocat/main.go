// Command bongocat runs the Bongo Cat desktop mascot.
//
// The window docks to the bottom-right corner of the primary monitor. The
// paw follows the cursor and key sprites light up while keys are held.
// conf.yaml is re-read every second; edit it while the cat is running to
// tune the stroke.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/bongocat"
)

func main() {
	var (
		configPath  = flag.String("config", "conf.yaml", "hot-reloaded tunables")
		layersPath  = flag.String("layers", "Cat2/init.yaml", "layer manifest")
		keysPath    = flag.String("keys", "Cat2/keyinf.yaml", "key sprite manifest; empty disables key sprites")
		iconPath    = flag.String("icon", "", "PNG window icon")
		scriptPath  = flag.String("script", "", "JSON input script to play instead of live input")
		screenshots = flag.String("screenshots", "screenshots", "directory for script screenshots")
		screen      = flag.String("screen", "", "monitor size as WxH; default is the primary monitor")
		debug       = flag.Bool("debug", false, "print frame timing and draw the test point")
		showFPS     = flag.Bool("fps", false, "show the FPS overlay")
		keepStats   = flag.Bool("stats", true, "persist key press counters")
	)
	flag.Parse()

	watcher, err := bongocat.NewConfigWatcher(*configPath, bongocat.DefaultReloadInterval)
	if err != nil {
		log.Fatal(err)
	}
	watcher.Start()
	defer watcher.Stop()

	assets, err := bongocat.LoadAssets(*layersPath, *keysPath)
	if err != nil {
		log.Fatal(err)
	}

	opts := bongocat.MascotOptions{Debug: *debug, ShowFPS: *showFPS}
	if *screen != "" {
		var w, h float64
		if _, err := fmt.Sscanf(*screen, "%gx%g", &w, &h); err != nil {
			log.Fatalf("bad -screen %q: %v", *screen, err)
		}
		opts.ScreenSize = bongocat.Vec2{X: w, Y: h}
	}
	if *keepStats {
		stats, err := bongocat.OpenKeyStats()
		if err != nil {
			log.Printf("bongocat: %v (counting in memory)", err)
		}
		opts.Stats = stats
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		if opts.Script, err = bongocat.LoadTestScript(data); err != nil {
			log.Fatal(err)
		}
		opts.ExitOnScriptEnd = true
	}

	mascot, err := bongocat.NewMascot(assets, watcher, opts)
	if err != nil {
		log.Fatal(err)
	}
	mascot.ScreenshotDir = *screenshots

	cfg := bongocat.RunConfig{}
	if *iconPath != "" {
		if cfg.Icon, err = bongocat.LoadImage(*iconPath); err != nil {
			log.Fatal(err)
		}
	}
	if err := bongocat.Run(mascot, cfg); err != nil {
		log.Fatal(err)
	}
}
