//go:build ebiten

package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"life-torus/internal/app"
	"life-torus/internal/config"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Bind(pflag.CommandLine)
	configPath := pflag.StringP("config", "c", "", "YAML config file")
	pflag.Parse()

	cfg, err := config.Resolve(*configPath, pflag.CommandLine, cfg)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	sim, err := cfg.NewLife()
	if err != nil {
		log.Fatalf("build simulation: %v", err)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("life-torus: " + sim.StoreName())
	tps := cfg.TPS
	if tps <= 0 {
		tps = ebiten.SyncWithFPS
	}
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(size.W*cfg.Scale+app.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
