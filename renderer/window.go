// Package renderer implements the desktop window host on raylib.
package renderer

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/host"
)

// Window is a raylib window acting as both Host and Surface. It must be
// created and used on the main OS thread.
type Window struct {
	w, h       int
	scrollStep float64
	pointer    rl.Vector2
	closed     bool
}

// Open creates a resizable, vsynced window.
func Open(width, height, fps int, title string, scrollStep float64) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", width, height)
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("opening window: %w", host.ErrNoSurface)
	}
	if fps > 0 {
		rl.SetTargetFPS(int32(fps))
	}
	return &Window{
		w:          rl.GetScreenWidth(),
		h:          rl.GetScreenHeight(),
		scrollStep: scrollStep,
		pointer:    rl.GetMousePosition(),
	}, nil
}

func (win *Window) Surface() (host.Surface, error) {
	if win.closed {
		return nil, host.ErrNoSurface
	}
	return win, nil
}

func (win *Window) Size() (int, int) {
	return win.w, win.h
}

// Poll translates raylib input state into bus events.
func (win *Window) Poll(bus *host.Bus) {
	if rl.WindowShouldClose() {
		bus.Publish(host.Event{Type: host.EventQuit})
		return
	}

	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		if w != win.w || h != win.h {
			win.w, win.h = w, h
			bus.Publish(host.Event{Type: host.EventResize, W: w, H: h})
		}
	}

	if pos := rl.GetMousePosition(); pos != win.pointer {
		win.pointer = pos
		bus.Publish(host.Event{Type: host.EventPointerMove, X: float64(pos.X), Y: float64(pos.Y)})
	}

	if dy := win.scrollDelta(); dy != 0 {
		bus.Publish(host.Event{Type: host.EventScroll, DY: dy})
	}
}

// scrollDelta combines the wheel and scroll keys into a page delta.
func (win *Window) scrollDelta() float64 {
	dy := WheelToScroll(rl.GetMouseWheelMove(), win.scrollStep)
	if rl.IsKeyDown(rl.KeyDown) {
		dy += win.scrollStep / 4
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy -= win.scrollStep / 4
	}
	if rl.IsKeyPressed(rl.KeyPageDown) || rl.IsKeyPressed(rl.KeySpace) {
		dy += float64(win.h) * 0.9
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		dy -= float64(win.h) * 0.9
	}
	return dy
}

// WheelToScroll converts a wheel movement (positive away from the user) to a
// page scroll delta (positive down).
func WheelToScroll(wheel float32, step float64) float64 {
	return -float64(wheel) * step
}

func (win *Window) BeginFrame() {
	rl.BeginDrawing()
}

// EndFrame presents the frame; raylib waits for vsync or the target rate here.
func (win *Window) EndFrame() {
	rl.EndDrawing()
}

func (win *Window) WaitFrame(ctx context.Context) error {
	return ctx.Err()
}

func (win *Window) Close() error {
	if !win.closed {
		win.closed = true
		rl.CloseWindow()
	}
	return nil
}

func (win *Window) Clear(c host.Color) {
	rl.ClearBackground(ToRL(c))
}

func (win *Window) Line(x1, y1, x2, y2, width float64, c host.Color) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		rl.Vector2{X: float32(x2), Y: float32(y2)},
		float32(width),
		ToRL(c),
	)
}

func (win *Window) Circle(x, y, r float64, c host.Color) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(r), ToRL(c))
}

// ToRL converts a host colour to a raylib colour.
func ToRL(c host.Color) rl.Color {
	return rl.Fade(rl.NewColor(c.R, c.G, c.B, 255), float32(c.A))
}
