package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/render"
	"gravity-sim/pkg/simulation"
)

const (
	screenWidth  = 1600
	screenHeight = 960

	trailMaxLife     = 120.0 // simulated time
	maxTrailSegments = 600

	// UI
	uiBtnW   = 100
	uiBtnH   = 28
	uiBtnPad = 12

	// force graph
	graphW = 360
	graphH = 120

	forceHistoryMax = 600
)

// Game ---
type Game struct {
	env    *simulation.Environment
	trails *render.Trails
	vp     render.Viewport
	paused bool

	// real-time mode scales frame time by the configured speed instead of
	// ticking with the fixed dt
	realtime bool
	lastTick time.Time

	selA int
	selB int

	showComponents bool
	forceHistory   []float64
	fxHistory      []float64
	fyHistory      []float64

	shortcutsVisible bool
	resetModalOpen   bool

	// how the environment was loaded, for reset
	envPath      string
	settingsPath string
}

// Update ---
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.lastTick = time.Now()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.advanceOneStep(g.env.Sim.Config().Dt)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shortcutsVisible = !g.shortcutsVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.vp = g.vp.Zoom(1.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.vp = g.vp.Zoom(0.8)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.vp.Center = g.env.Sim.CenterOfMass()
	}

	if g.resetModalOpen {
		if inpututil.IsKeyJustPressed(ebiten.KeyY) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := g.resetSimulation(); err != nil {
				log.Printf("Reset failed: %v", err)
			}
			return nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.resetModalOpen = false
			return nil
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.handleClick(ebiten.CursorPosition())
		return nil
	}

	if g.paused || g.resetModalOpen {
		return nil
	}

	if g.realtime {
		now := time.Now()
		elapsed := now.Sub(g.lastTick)
		g.lastTick = now
		g.advanceOneStep(elapsed.Seconds() * g.env.Sim.Config().Speed)
		return nil
	}
	g.advanceOneStep(g.env.Sim.Config().Dt)
	return nil
}

// button positions, right to left from the top-right corner
func buttonX(slot int) int {
	return screenWidth - (uiBtnPad+uiBtnW)*(slot+1)
}

const (
	slotPause = iota
	slotStep
	slotQuit
	slotComp
	slotReset
)

func (g *Game) handleClick(mx, my int) {
	if g.resetModalOpen {
		mw, mh := 360, 120
		mx0 := (screenWidth - mw) / 2
		my0 := (screenHeight - mh) / 2
		yesX := mx0 + 40
		btnY := my0 + mh - 44
		if pointInRect(mx, my, yesX, btnY, uiBtnW, uiBtnH) {
			if err := g.resetSimulation(); err != nil {
				log.Printf("Reset failed: %v", err)
			}
			return
		}
		// "No" and any click outside close the modal
		g.resetModalOpen = false
		return
	}

	switch {
	case pointInRect(mx, my, buttonX(slotPause), uiBtnPad, uiBtnW, uiBtnH):
		g.paused = !g.paused
		g.lastTick = time.Now()
		return
	case pointInRect(mx, my, buttonX(slotStep), uiBtnPad, uiBtnW, uiBtnH):
		if g.paused {
			g.advanceOneStep(g.env.Sim.Config().Dt)
		}
		return
	case pointInRect(mx, my, buttonX(slotQuit), uiBtnPad, uiBtnW, uiBtnH):
		os.Exit(0)
	case pointInRect(mx, my, buttonX(slotComp), uiBtnPad, uiBtnW, uiBtnH):
		if g.selA != -1 && g.selB != -1 {
			g.showComponents = !g.showComponents
		}
		return
	case pointInRect(mx, my, buttonX(slotReset), uiBtnPad, uiBtnW, uiBtnH):
		g.resetModalOpen = true
		return
	}

	sprites := render.Sprites(g.env.Sim, g.env.Styles, g.vp)
	clicked := render.Pick(sprites, float64(mx), float64(my))
	if clicked < 0 {
		return
	}
	prevA, prevB := g.selA, g.selB
	switch {
	case g.selA == -1:
		g.selA = clicked
	case g.selB == -1:
		if clicked == g.selA {
			g.selA = -1
		} else {
			g.selB = clicked
		}
	case clicked == g.selA:
		g.selA, g.selB = -1, -1
	case clicked == g.selB:
		g.selB = -1
	default:
		g.selA, g.selB = clicked, -1
	}
	if g.selA != prevA || g.selB != prevB {
		g.clearHistory()
	}
}

// advanceOneStep ---
func (g *Game) advanceOneStep(dt float64) {
	sim := g.env.Sim
	sim.Tick(dt)

	if g.selA != -1 && g.selB != -1 {
		f := sim.PairForce(g.selA, g.selB)
		g.forceHistory = appendCapped(g.forceHistory, r2.Norm(f))
		g.fxHistory = appendCapped(g.fxHistory, f.X)
		g.fyHistory = appendCapped(g.fyHistory, f.Y)
	}

	g.trails.Record(sim.Bodies(), dt)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > forceHistoryMax {
		h = h[len(h)-forceHistoryMax:]
	}
	return h
}

func (g *Game) clearHistory() {
	g.forceHistory = nil
	g.fxHistory = nil
	g.fyHistory = nil
}

// Draw ---
func (g *Game) Draw(screen *ebiten.Image) {
	sim := g.env.Sim
	sprites := render.Sprites(sim, g.env.Styles, g.vp)

	// trails
	const margin = 64
	for i := 0; i < g.trails.Len(); i++ {
		base := sprites[i].Color
		for _, s := range g.trails.Segments(i) {
			x0, y0 := g.vp.ToScreen(s.From)
			x1, y1 := g.vp.ToScreen(s.To)
			if !g.vp.Visible(x0, y0, margin) && !g.vp.Visible(x1, y1, margin) {
				continue
			}
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, fade(base, g.trails.Fade(s)), true)
		}
	}

	// bodies
	for _, sp := range sprites {
		if !g.vp.Visible(sp.X, sp.Y, sp.Radius) {
			continue
		}
		vector.DrawFilledCircle(screen, float32(sp.X), float32(sp.Y), float32(sp.Radius), sp.Color, true)
		if sp.Index == g.selA || sp.Index == g.selB {
			vector.StrokeCircle(screen, float32(sp.X), float32(sp.Y), float32(sp.Radius+3), 1.5, color.RGBA{255, 255, 255, 180}, true)
		}
	}

	cfg := sim.Config()
	p := sim.Momentum()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Env: %s  Policy: %v  Paused: %v\nt = %.2f  ticks = %d  dt = %g\nE = %.6e  |p| = %.3e  zoom = %.2f",
		g.env.Name, cfg.Policy, g.paused, sim.Elapsed(), sim.Ticks(), cfg.Dt,
		sim.Energy(), r2.Norm(p), g.vp.Scale))
	drawShortcuts(screen, g)

	mx, my := ebiten.CursorPosition()
	button := func(slot int, label string, active, disabled bool) {
		x := buttonX(slot)
		drawButton(screen, x, uiBtnPad, uiBtnW, uiBtnH, label, active, disabled, pointInRect(mx, my, x, uiBtnPad, uiBtnW, uiBtnH))
	}
	pauseLabel := "Pause"
	if g.paused {
		pauseLabel = "Resume"
	}
	button(slotPause, pauseLabel, g.paused, false)
	button(slotStep, "Step", false, !g.paused)
	button(slotQuit, "Quit", false, false)
	button(slotComp, "Comp", g.showComponents, g.selA == -1 || g.selB == -1)
	button(slotReset, "Reset", false, false)

	if g.selA != -1 && g.selB != -1 {
		a, b := sprites[g.selA], sprites[g.selB]
		drawArrow(screen, a.X, a.Y, b.X, b.Y, color.RGBA{255, 200, 0, 220})
		f := sim.PairForce(g.selA, g.selB)
		label := fmt.Sprintf("F = %.3e", r2.Norm(f))
		text.Draw(screen, label, basicfont.Face7x13, int((a.X+b.X)/2)-len(label)*4, int((a.Y+b.Y)/2)-6, color.RGBA{255, 255, 200, 255})

		graphX := screenWidth - graphW - 16
		baseY := screenHeight - graphH - 16
		step := graphH + 8
		if g.showComponents {
			drawForceGraph(screen, g.fxHistory, graphX, baseY-step*2, graphW, graphH, color.RGBA{255, 100, 100, 255}, "Fx")
			drawForceGraph(screen, g.fyHistory, graphX, baseY-step, graphW, graphH, color.RGBA{100, 255, 100, 255}, "Fy")
			drawForceGraph(screen, g.forceHistory, graphX, baseY, graphW, graphH, color.RGBA{100, 100, 255, 255}, "F")
		} else {
			drawForceGraph(screen, g.forceHistory, graphX, baseY, graphW, graphH, color.RGBA{100, 100, 255, 255}, "")
		}
	}

	// tooltip while paused
	if g.paused {
		if i := render.Pick(sprites, float64(mx), float64(my)); i >= 0 {
			b := sim.Body(i)
			drawTooltip(screen, mx, my, []string{
				fmt.Sprintf("Body #%d", i),
				fmt.Sprintf("Mass: %.3e", b.Mass),
				fmt.Sprintf("Pos: (%.2f, %.2f)", b.Pos.X, b.Pos.Y),
				fmt.Sprintf("Vel: (%.4f, %.4f)", b.Vel.X, b.Vel.Y),
				fmt.Sprintf("Speed: %.4f", r2.Norm(b.Vel)),
			})
		}
	}

	if g.resetModalOpen {
		drawResetModal(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// resetSimulation reloads the environment from disk and clears all UI state.
func (g *Game) resetSimulation() error {
	env, err := simulation.LoadEnvironment(g.envPath, g.settingsPath)
	if err != nil {
		return err
	}
	g.env = env
	g.trails.Reset(env.Sim.Bodies())
	g.selA, g.selB = -1, -1
	g.clearHistory()
	g.resetModalOpen = false
	g.paused = false
	g.lastTick = time.Now()
	return nil
}

func main() {
	envName := flag.String("env", "binary", "environment name (binary, three, solar, chaos)")
	assets := flag.String("assets", filepath.Join("pkg", "assets"), "directory holding environment files")
	settings := flag.String("settings", "", "optional INI file overriding physics settings")
	scale := flag.Float64("scale", 1.5, "pixels per world unit")
	realtime := flag.Bool("realtime", false, "scale frame time by speed instead of using the fixed dt")
	flag.Parse()

	envPath := filepath.Join(*assets, *envName+".json")
	env, err := simulation.LoadEnvironment(envPath, *settings)
	if err != nil {
		log.Fatalf("Loading environment failed: %v", err)
	}

	game := &Game{
		env:              env,
		trails:           render.NewTrails(env.Sim.Bodies(), trailMaxLife, maxTrailSegments),
		vp:               render.Viewport{Width: screenWidth, Height: screenHeight, Scale: *scale},
		realtime:         *realtime,
		lastTick:         time.Now(),
		selA:             -1,
		selB:             -1,
		shortcutsVisible: true,
		envPath:          envPath,
		settingsPath:     *settings,
	}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Gravity Simulation - " + env.Name)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// --- drawing helpers ---

func drawArrow(screen *ebiten.Image, x0, y0, x1, y1 float64, clr color.RGBA) {
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1.5, clr, true)
	dx, dy := x1-x0, y1-y0
	d := math.Hypot(dx, dy)
	if d == 0 {
		return
	}
	ux, uy := dx/d, dy/d
	const sz = 10.0
	px, py := -uy, ux
	for _, side := range []float64{1, -1} {
		hx := x1 - ux*sz + side*px*sz*0.6
		hy := y1 - uy*sz + side*py*sz*0.6
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(hx), float32(hy), 1.5, clr, true)
	}
}

// drawForceGraph draws an auto-scaled line graph of data.
func drawForceGraph(screen *ebiten.Image, data []float64, x, y, w, h int, lineColor color.RGBA, title string) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{8, 8, 16, 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{30, 30, 40, 160}, false)
	if title != "" {
		text.Draw(screen, title, basicfont.Face7x13, x+6, y+14, color.RGBA{220, 220, 220, 200})
	}
	if len(data) == 0 {
		return
	}

	minV, maxV := data[0], data[0]
	for _, v := range data {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	// symmetric around zero when the sign changes
	if minV < 0 && maxV > 0 {
		b := math.Max(math.Abs(minV), math.Abs(maxV))
		minV, maxV = -b, b
	}
	if minV == maxV {
		minV, maxV = minV-1, maxV+1
	} else {
		pad := 0.05 * (maxV - minV)
		minV, maxV = minV-pad, maxV+pad
	}

	const padding = 6
	gw := float64(w - padding*2)
	gh := float64(h - padding*2)
	left := float32(x + padding)
	right := float32(x + w - padding)
	for i := 0; i <= 4; i++ {
		yy := float32(float64(y+padding) + gh*float64(i)/4)
		vector.StrokeLine(screen, left, yy, right, yy, 1, color.RGBA{40, 40, 60, 120}, false)
	}
	if minV <= 0 && maxV >= 0 {
		zy := float32(float64(y+padding) + gh*(1-(0-minV)/(maxV-minV)))
		vector.StrokeLine(screen, left, zy, right, zy, 1, color.RGBA{150, 150, 150, 140}, false)
	}

	if n := len(data); n >= 2 {
		stepX := gw / float64(n-1)
		var px, py float64
		for i, v := range data {
			nx := float64(x+padding) + stepX*float64(i)
			ny := float64(y+padding) + gh*(1-(v-minV)/(maxV-minV))
			if i > 0 {
				vector.StrokeLine(screen, float32(px), float32(py), float32(nx), float32(ny), 1, lineColor, true)
			}
			px, py = nx, ny
		}
	}
	lbl := fmt.Sprintf("%.3e..%.3e", minV, maxV)
	text.Draw(screen, lbl, basicfont.Face7x13, x+6, y+h-6, color.RGBA{180, 180, 200, 180})
}

func drawPanel(screen *ebiten.Image, x, y int, lines []string, lineH int) {
	const pad, charW = 6, 7
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	w := min(maxLen*charW+pad*2, 600)
	h := min(len(lines)*lineH+pad*2, 400)
	if x+w > screenWidth {
		x = screenWidth - w - 8
	}
	if y+h > screenHeight {
		y = screenHeight - h - 8
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{10, 10, 20, 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{60, 60, 80, 160}, false)
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, x+pad, y+pad+(i+1)*lineH-2, color.RGBA{220, 220, 220, 255})
	}
}

func drawTooltip(screen *ebiten.Image, mx, my int, lines []string) {
	drawPanel(screen, mx+12, my+12, lines, 13)
}

func drawShortcuts(screen *ebiten.Image, g *Game) {
	if !g.shortcutsVisible {
		return
	}
	drawPanel(screen, 12, 100, []string{
		"P / Space - Pause/Resume",
		"N - Step (when paused)",
		"K / =  - zoom in",
		"J / -  - zoom out",
		"C - centre on centre of mass",
		"Click - select bodies (two for force)",
		"H - hide shortcuts",
	}, 14)
}

// drawResetModal draws the reset confirmation dialog.
func drawResetModal(screen *ebiten.Image) {
	const w, h = 360, 120
	x := (screenWidth - w) / 2
	y := (screenHeight - h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), w, h, color.RGBA{20, 20, 20, 220}, false)
	vector.DrawFilledRect(screen, float32(x+2), float32(y+2), w-4, h-4, color.RGBA{36, 36, 44, 200}, false)

	text.Draw(screen, "Reset simulation?", basicfont.Face7x13, x+16, y+28, color.RGBA{230, 230, 230, 255})
	text.Draw(screen, "Reload the environment file from disk.", basicfont.Face7x13, x+16, y+48, color.RGBA{190, 190, 190, 200})

	btnY := y + h - 44
	drawButton(screen, x+40, btnY, uiBtnW, uiBtnH, "Yes", false, false, false)
	drawButton(screen, x+w-40-uiBtnW, btnY, uiBtnW, uiBtnH, "No", false, false, false)
}

// fade scales a premultiplied colour by f.
func fade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), uint8(float64(c.A) * f)}
}

func pointInRect(px, py, rx, ry, rw, rh int) bool {
	return px >= rx && px <= rx+rw && py >= ry && py <= ry+rh
}

func drawButton(screen *ebiten.Image, x, y, w, h int, label string, active bool, disabled bool, hover bool) {
	bg := color.RGBA{20, 20, 20, 200}
	textColor := color.RGBA{240, 240, 240, 255}
	if disabled {
		bg = color.RGBA{60, 60, 60, 160}
		textColor = color.RGBA{160, 160, 160, 200}
	} else {
		if active {
			bg = color.RGBA{60, 120, 60, 220}
		}
		if hover {
			if active {
				bg = color.RGBA{100, 190, 100, 240}
			} else {
				bg = color.RGBA{90, 90, 90, 230}
			}
		}
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bg, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{40, 40, 40, 120}, false)
	const charW = 7
	xText := x + (w-len(label)*charW)/2
	yText := y + (h+8)/2
	text.Draw(screen, label, basicfont.Face7x13, xText, yText, textColor)
}
