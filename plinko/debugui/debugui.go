// Package debugui draws Dear ImGui windows that inspect and drive a running
// plinko loop.
package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/plinko/plinko"
)

// InputState reports whether Dear ImGui is consuming mouse or keyboard
// input this frame.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// CurrentInputState reads the input capture state from ImGui.
func CurrentInputState() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// Panel renders the control, distribution and timing windows for a loop.
// Call Render between the backend's BeginFrame and EndFrame.
type Panel struct {
	loop  *plinko.Loop
	tally *plinko.Tally
	perf  *PerformanceStats

	// Events collects the events requested through the control window
	// since the last call to TakeEvents.
	events []plinko.Event
}

// NewPanel returns a panel for loop. tally may be nil.
func NewPanel(loop *plinko.Loop, tally *plinko.Tally, historyFrames int) *Panel {
	return &Panel{
		loop:  loop,
		tally: tally,
		perf:  NewPerformanceStats(historyFrames),
	}
}

// TakeEvents returns and forgets the events requested through the UI.
func (p *Panel) TakeEvents() []plinko.Event {
	evs := p.events
	p.events = nil
	return evs
}

// Render draws every window.
func (p *Panel) Render(deltaTime float32) {
	p.renderControls()
	if p.tally != nil {
		p.renderDistribution()
	}
	p.perf.Render(p.loop, deltaTime)
}

func (p *Panel) renderControls() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 190), imgui.CondOnce)

	if !imgui.BeginV("Plinko", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := p.loop.GetStats()
	board := p.loop.Board()
	state := p.loop.State()

	imgui.Text(fmt.Sprintf("Rows: %d  Spaces: %d  Cups: %d", board.Rows(), board.TotalSpaces(), board.CupCount()))
	imgui.Text(fmt.Sprintf("Mode: %s (%v)", stats.Mode, stats.Interval))
	imgui.Text(fmt.Sprintf("Tick: %d", stats.Ticks))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Balls on board: %d", state.Balls()))
	imgui.Text(fmt.Sprintf("Dropped: %d  Collapsed: %d", stats.Dropped, stats.Collapsed))
	imgui.Text(fmt.Sprintf("Landed: %d  Merged: %d", stats.Landed, stats.Merged))
	imgui.Separator()

	if imgui.Button("Drop") {
		p.events = append(p.events, plinko.EventDrop)
	}
	imgui.SameLine()
	if imgui.Button("Toggle Mode") {
		p.events = append(p.events, plinko.EventToggle)
	}
	imgui.SameLine()
	if imgui.Button("Reset Cups") {
		p.events = append(p.events, plinko.EventReset)
	}

	imgui.End()
}

func (p *Panel) renderDistribution() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 210), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 260), imgui.CondOnce)

	if !imgui.BeginV("Cup Distribution", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Total landings: %d", p.tally.Total()))
	if imgui.Button("Clear Tally") {
		p.tally.Reset()
	}

	cups := p.loop.State().Cups()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CupTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Cup")
		imgui.TableSetupColumn("Landed")
		imgui.TableSetupColumn("Share")
		imgui.TableHeadersRow()

		for cup, count := range p.tally.Counts() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if cups[cup] {
				imgui.Text(fmt.Sprintf("%d (o)", cup))
			} else {
				imgui.Text(fmt.Sprintf("%d", cup))
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", count))
			imgui.TableNextColumn()
			share := p.tally.Share(cup)
			imgui.ProgressBarV(float32(share), imgui.NewVec2(-1, 0), fmt.Sprintf("%.1f%%", share*100))
		}

		imgui.EndTable()
	}

	imgui.End()
}
