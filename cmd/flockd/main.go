// Command flockd serves a live flocking simulation over websockets.
//
// Viewers connect to /ws/flock and receive one binary message per tick
// holding the little endian float32 records of every agent, five floats
// each: x, y, vx, vy and the status flags. Messages sent the other way are
// JSON control updates such as {"maxSpeed": 6} and take effect between
// frames. The scenario's step count is ignored; the daemon runs until
// interrupted.
package main

import (
	"flag"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-kernel/internal/scenario"
	"github.com/lao-tseu-is-alive/go-flock-kernel/internal/stream"
	"github.com/lao-tseu-is-alive/go-flock-kernel/pkg/boids"
)

func main() {
	addr := flag.String("addr", ":8080", "server listen address")
	scenarioFile := flag.String("scenario", "", "path to a TOML scenario file")
	fps := flag.Int("fps", 30, "simulation frames per second")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)
	if *fps <= 0 {
		logger.Fatalf("fps must be positive, got %d", *fps)
	}

	// 1. Scenario and tuning
	sc := scenario.Default()
	var err error
	if *scenarioFile != "" {
		sc, err = scenario.Load(*scenarioFile)
		if err != nil {
			logger.Fatal(err)
		}
	}
	cfg := boids.DefaultConfig()
	if sc.ConfigFile != "" {
		cfg, err = boids.LoadConfig(sc.ConfigFile, sc.SchemaFile)
		if err != nil {
			logger.Fatal(err)
		}
	}
	if 2*sc.SpawnMargin >= cfg.WorldWidth || 2*sc.SpawnMargin >= cfg.WorldHeight {
		logger.Fatalf("spawn margin %v leaves no interior in a %vx%v world",
			sc.SpawnMargin, cfg.WorldWidth, cfg.WorldHeight)
	}

	// 2. Seed and spawn
	seed := sc.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	m := sc.SpawnMargin
	frame := boids.Create(sc.Boids, m, cfg.WorldWidth-m, m, cfg.WorldHeight-m, cfg.MaxSpeed, rng)

	// 3. Hub and control channel. The callback must not block the viewer's
	// read loop, so a full queue drops the update.
	controls := make(chan stream.ControlUpdate, 16)
	hub := stream.NewHub(logger, func(u stream.ControlUpdate) {
		select {
		case controls <- u:
		default:
			logger.Warn("control queue full, update dropped")
		}
	})

	// 4. Run loop
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(*fps))
		defer ticker.Stop()
		for range ticker.C {
			// Apply pending tuning changes between frames so no frame sees
			// two configs.
		Drain:
			for {
				select {
				case u := <-controls:
					u.Apply(cfg)
				default:
					break Drain
				}
			}

			out := boids.Update(frame, cfg, rng)
			frame = boids.StripFlags(out)
			hub.BroadcastFrame(out)
		}
	}()

	http.Handle("/ws/flock", hub.Handler())
	logger.Infof("streaming %d boids at %d fps on ws://localhost%s/ws/flock (seed %d)",
		sc.Boids, *fps, *addr, seed)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Fatal(err)
	}
}
