package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/plinko/internal/config"
	"github.com/plus3/plinko/plinko"
	"github.com/plus3/plinko/plinko/debugui"
	debugui_ebiten "github.com/plus3/plinko/plinko/debugui/ebiten"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

func main() {
	showDebug := flag.Bool("debug", true, "show the ImGui debug panel")
	cfg, err := config.Load(flag.CommandLine, os.Args[1:], ".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loopCfg, err := cfg.LoopConfig()
	if err != nil {
		log.Fatalf("Failed to build loop: %v", err)
	}

	view := newBoardView(loopCfg.Board)
	loopCfg.Renderer = view

	loop := plinko.NewLoop(loopCfg)
	tally := plinko.NewTally(loopCfg.Board)
	loop.Register(tally)

	game := &Game{
		loop: loop,
		view: view,
	}
	if *showDebug {
		game.imguiBackend = debugui_ebiten.NewImguiBackend("Plinko", ScreenWidth, ScreenHeight)
		game.panel = debugui.NewPanel(loop, tally, 120)
		game.timer = debugui.NewFrameTimer()
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("Plinko")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}

	stats := loop.GetStats()
	log.Printf("stopped after %d ticks: dropped=%d landed=%d cups=%v", stats.Ticks, stats.Dropped, stats.Landed, tally.Counts())
}

// Game implements ebiten.Game. Ebiten calls Update from a single goroutine,
// so the loop is driven from there: key presses become events and the tick
// runs whenever its deadline has passed.
type Game struct {
	loop *plinko.Loop
	view *boardView

	imguiBackend *debugui_ebiten.ImguiBackend
	panel        *debugui.Panel
	timer        *debugui.FrameTimer
}

func (g *Game) Update() error {
	if g.imguiBackend != nil {
		g.imguiBackend.BeginFrame()
	}

	events := keyEvents(g.wantKeyboard())
	if g.panel != nil {
		events = append(events, g.panel.TakeEvents()...)
	}

	for _, ev := range events {
		if g.loop.Handle(ev) {
			return ebiten.Termination
		}
	}

	if now := time.Now(); g.loop.Due(now) {
		if err := g.loop.Tick(now); err != nil {
			return err
		}
	}

	if g.panel != nil {
		g.panel.Render(g.timer.GetDeltaTime())
		g.imguiBackend.EndFrame()
	}
	return nil
}

func (g *Game) wantKeyboard() bool {
	if g.imguiBackend == nil {
		return false
	}
	return debugui.CurrentInputState().WantCaptureKeyboard
}

// keyEvents maps the keys pressed this frame the same way the terminal
// does: Escape quits, Tab toggles, Enter resets and other keys drop.
func keyEvents(captured bool) []plinko.Event {
	if captured {
		return nil
	}

	var events []plinko.Event
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		events = append(events, eventForKey(key))
	}
	return events
}

func eventForKey(key ebiten.Key) plinko.Event {
	switch key {
	case ebiten.KeyEscape:
		return plinko.EventQuit
	case ebiten.KeyTab:
		return plinko.EventToggle
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return plinko.EventReset
	}
	return plinko.EventDrop
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.view.Draw(screen)

	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
