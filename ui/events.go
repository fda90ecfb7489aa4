package ui

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"git.c3pb.de/farhaven/solar/input"
)

func (w *Window) bindEvents() {
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.router.Resize(width, height)
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.fbW, w.fbH = width, height
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.router.MouseMove(x, y)
	})
	w.win.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := win.GetCursorPos()
		switch action {
		case glfw.Press:
			w.router.MouseDown(x, y)
		case glfw.Release:
			w.router.MouseUp(x, y)
		}
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		/* GLFW reports wheel-up as positive, which zooms in */
		w.router.Scroll(-yoff * input.WheelNotch)
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if name := keyName(key, mods); name != `` {
			w.router.Key(name)
		}
	})
}

func keyName(key glfw.Key, mods glfw.ModifierKey) string {
	switch key {
	case glfw.KeySpace:
		return `space`
	case glfw.KeyEscape:
		return `escape`
	case glfw.KeyEqual:
		if mods&glfw.ModShift != 0 {
			return `+`
		}
		return `=`
	case glfw.KeyKPAdd:
		return `+`
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		return `-`
	}

	if key >= glfw.Key0 && key <= glfw.Key9 {
		return string(rune('0' + key - glfw.Key0))
	}
	if key >= glfw.KeyKP0 && key <= glfw.KeyKP9 {
		return string(rune('0' + key - glfw.KeyKP0))
	}
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		return string(rune('a' + key - glfw.KeyA))
	}

	return ``
}
