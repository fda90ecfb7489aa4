package session

import "fmt"

// Command is anything Update knows how to apply.
type Command interface{}

// NoBody clears the focus.
const NoBody = -1

type SetSpeed struct{ Value float64 }
type SetZoom struct{ Value float64 }

// StepSpeed nudges the speed, staying within [SpeedMin, SpeedMax].
type StepSpeed struct{ Delta float64 }

type TogglePause struct{}
type Reset struct{}
type ToggleTrails struct{}
type Focus struct{ Body int }

// Pick is a click on the render surface, in viewport pixels.
type Pick struct{ X, Y float64 }

type PointerDown struct{ X, Y float64 }
type PointerMove struct{ X, Y float64 }
type PointerUp struct{}
type Wheel struct{ DeltaY float64 }
type Resize struct{ W, H int }
type Quit struct{}

// CommandName is used for metrics labels and logging.
func CommandName(cmd Command) string {
	switch cmd.(type) {
	case SetSpeed:
		return "speed"
	case SetZoom:
		return "zoom"
	case StepSpeed:
		return "speed_step"
	case TogglePause:
		return "pause"
	case Reset:
		return "reset"
	case ToggleTrails:
		return "trails"
	case Focus:
		return "focus"
	case Pick:
		return "pick"
	case PointerDown:
		return "pointer_down"
	case PointerMove:
		return "pointer_move"
	case PointerUp:
		return "pointer_up"
	case Wheel:
		return "wheel"
	case Resize:
		return "resize"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
