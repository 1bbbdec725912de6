// Command nbody-term plays an environment in the terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"gravity-sim/pkg/render"
	"gravity-sim/pkg/simulation"
)

const (
	frameInterval = 33 * time.Millisecond
	trailMaxLife  = 60.0
	trailSegments = 200
	cellAspect    = 0.5 // terminal cells are about twice as tall as wide
)

type viewer struct {
	screen tcell.Screen
	env    *simulation.Environment
	trails *render.Trails
	vp     render.Viewport

	stepsPerFrame int
	paused        bool
}

func newViewer(env *simulation.Environment, scale float64, steps int) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	w, h := screen.Size()
	return &viewer{
		screen:        screen,
		env:           env,
		trails:        render.NewTrails(env.Sim.Bodies(), trailMaxLife, trailSegments),
		vp:            render.Viewport{Width: w, Height: h, Scale: scale, Aspect: cellAspect},
		stepsPerFrame: steps,
	}, nil
}

func (v *viewer) step() {
	dt := v.env.Sim.Config().Dt
	for i := 0; i < v.stepsPerFrame; i++ {
		v.env.Sim.Step()
	}
	v.trails.Record(v.env.Sim.Bodies(), dt*float64(v.stepsPerFrame))
}

func (v *viewer) draw() {
	v.screen.Clear()

	sprites := render.Sprites(v.env.Sim, v.env.Styles, v.vp)
	for i := 0; i < v.trails.Len(); i++ {
		c := sprites[i].Color
		for _, s := range v.trails.Segments(i) {
			x, y := v.vp.ToScreen(s.To)
			if !v.vp.Visible(x, y, 0) {
				continue
			}
			f := v.trails.Fade(s) * 0.6
			col := tcell.NewRGBColor(int32(float64(c.R)*f), int32(float64(c.G)*f), int32(float64(c.B)*f))
			v.screen.SetContent(int(x), int(y), '·', nil, tcell.StyleDefault.Foreground(col))
		}
	}
	for _, sp := range sprites {
		if !v.vp.Visible(sp.X, sp.Y, 0) {
			continue
		}
		col := tcell.NewRGBColor(int32(sp.Color.R), int32(sp.Color.G), int32(sp.Color.B))
		v.screen.SetContent(int(sp.X), int(sp.Y), '●', nil, tcell.StyleDefault.Foreground(col).Bold(true))
	}

	sim := v.env.Sim
	status := fmt.Sprintf(" %s  t=%.1f  E=%.5e  policy=%v  zoom=%.2f  [space] pause  [+/-] zoom  [c] centre  [q] quit",
		v.env.Name, sim.Elapsed(), sim.Energy(), sim.Config().Policy, v.vp.Scale)
	if v.paused {
		status += "  PAUSED"
	}
	for i, r := range []rune(status) {
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ', 'p':
			v.paused = !v.paused
		case 'n':
			if v.paused {
				v.step()
			}
		case '+', '=':
			v.vp = v.vp.Zoom(1.25)
		case '-':
			v.vp = v.vp.Zoom(0.8)
		case 'c':
			v.vp.Center = v.env.Sim.CenterOfMass()
		}
	case *tcell.EventResize:
		v.vp.Width, v.vp.Height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused {
				v.step()
			}
			v.draw()
		}
	}
}

func main() {
	envName := flag.String("env", "solar", "environment name (binary, three, solar, chaos)")
	assets := flag.String("assets", filepath.Join("pkg", "assets"), "directory holding environment files")
	settings := flag.String("settings", "", "optional INI file overriding physics settings")
	scale := flag.Float64("scale", 0.2, "cells per world unit")
	steps := flag.Int("steps", 10, "simulation steps per frame")
	flag.Parse()

	env, err := simulation.LoadEnvironment(filepath.Join(*assets, *envName+".json"), *settings)
	if err != nil {
		log.Fatalf("Loading environment failed: %v", err)
	}

	v, err := newViewer(env, *scale, max(*steps, 1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.screen.Fini()

	v.run()
}
