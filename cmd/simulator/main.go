// Command simulator replays a scripted touch session through the gesture
// engine and logs every lifecycle transition. With -monitor it also serves
// the event stream over websockets for an inspector client.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/touchsync/touchsync/internal/core/events/bus"
	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/observability/log"
	"github.com/touchsync/touchsync/internal/core/raycast"
	"github.com/touchsync/touchsync/internal/core/recognizer"
	"github.com/touchsync/touchsync/internal/core/touch"
	"github.com/touchsync/touchsync/internal/monitor"
)

func main() {
	configPath := flag.String("config", "", "recognizer config file (yaml)")
	monitorAddr := flag.String("monitor", "", "serve gesture events over websocket at this address")
	fps := flag.Int("fps", 60, "replay frame rate")
	loop := flag.Bool("loop", false, "replay the session until interrupted")
	flag.Parse()

	logger := log.New(log.LevelDebug)

	cfg := recognizer.DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			logger.Fatal("open config", log.Error(err))
		}
		cfg, err = recognizer.LoadYAML(f)
		_ = f.Close()
		if err != nil {
			logger.Fatal("load config", log.Error(err))
		}
	}

	engine := recognizer.NewEngine(cfg, logger).UseDefaultSet(buildScene())
	engine.Bus().Subscribe("", func(e bus.Event) {
		if e.Type == bus.TypeUpdated {
			return
		}
		logger.Info("gesture "+e.Type,
			log.String("kind", e.Kind),
			log.String("gesture", e.Gesture.ID),
			log.String("target", e.Gesture.Target),
			log.Uint64("frame", e.Frame),
		)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-stopCh
		cancel()
	}()

	g, ctx := errgroup.WithContext(ctx)
	if *monitorAddr != "" {
		srv := monitor.New(*monitorAddr, engine.Bus(), logger)
		g.Go(func() error { return srv.Run(ctx) })
	}
	g.Go(func() error {
		defer func() {
			if !*loop {
				cancel()
			}
		}()
		return replay(ctx, engine, time.Second/time.Duration(*fps), *loop)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("simulator stopped", log.Error(err))
	}
}

// buildScene lays out a small interactable board the scripted session drags
// across.
func buildScene() *raycast.Scene {
	s := raycast.NewScene()
	board := s.Add(nil, &raycast.Node{
		ID:           "board",
		Bounds:       geometry.Rect{X: 0, Y: 0, Width: 480, Height: 800},
		Interactable: true,
		Visible:      true,
	})
	s.Add(board, &raycast.Node{
		ID:           "card-a",
		Bounds:       geometry.Rect{X: 40, Y: 80, Width: 180, Height: 240},
		Interactable: true,
		Visible:      true,
	})
	s.Add(board, &raycast.Node{
		ID:           "card-b",
		Bounds:       geometry.Rect{X: 260, Y: 80, Width: 180, Height: 240},
		Interactable: true,
		Visible:      true,
	})
	return s
}

func replay(ctx context.Context, engine *recognizer.Engine, interval time.Duration, loop bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		for _, frame := range session() {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				engine.Tick(frame)
			}
		}
		if !loop {
			return nil
		}
	}
}

// session scripts: a tap on card-a, a one-finger drag across the board, a
// two-finger drag over card-b, then a pinch spread.
func session() [][]touch.Sample {
	var frames [][]touch.Sample

	// Tap.
	frames = append(frames,
		[]touch.Sample{began(1, 100, 150)},
		[]touch.Sample{stationary(1, 100, 150)},
		[]touch.Sample{ended(1, 100, 150)},
		nil,
	)

	// One-finger drag.
	frames = append(frames, []touch.Sample{began(2, 60, 400)})
	for i := 1; i <= 8; i++ {
		frames = append(frames, []touch.Sample{moved(2, 60+float64(i)*25, 400, 25, 0)})
	}
	frames = append(frames, []touch.Sample{ended(2, 260, 400)}, nil)

	// Two-finger drag over card-b.
	frames = append(frames, []touch.Sample{began(3, 300, 120), began(4, 380, 120)})
	for i := 1; i <= 6; i++ {
		dy := float64(i) * 20
		frames = append(frames, []touch.Sample{
			moved(3, 300, 120+dy, 0, 20),
			moved(4, 380, 120+dy, 0, 20),
		})
	}
	frames = append(frames, []touch.Sample{ended(3, 300, 240), stationary(4, 380, 240)}, nil)

	// Pinch spread.
	frames = append(frames, []touch.Sample{began(5, 220, 600), began(6, 260, 600)})
	for i := 1; i <= 6; i++ {
		dx := float64(i) * 12
		frames = append(frames, []touch.Sample{
			moved(5, 220-dx, 600, -12, 0),
			moved(6, 260+dx, 600, 12, 0),
		})
	}
	frames = append(frames, []touch.Sample{ended(5, 148, 600), ended(6, 332, 600)}, nil)

	return frames
}

func began(id touch.FingerID, x, y float64) touch.Sample {
	return touch.Sample{Finger: id, Position: geometry.Vec2{X: x, Y: y}, Phase: touch.PhaseBegan}
}

func moved(id touch.FingerID, x, y, dx, dy float64) touch.Sample {
	return touch.Sample{
		Finger:   id,
		Position: geometry.Vec2{X: x, Y: y},
		Delta:    geometry.Vec2{X: dx, Y: dy},
		Phase:    touch.PhaseMoved,
	}
}

func stationary(id touch.FingerID, x, y float64) touch.Sample {
	return touch.Sample{Finger: id, Position: geometry.Vec2{X: x, Y: y}, Phase: touch.PhaseStationary}
}

func ended(id touch.FingerID, x, y float64) touch.Sample {
	return touch.Sample{Finger: id, Position: geometry.Vec2{X: x, Y: y}, Phase: touch.PhaseEnded}
}
