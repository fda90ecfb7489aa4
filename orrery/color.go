package orrery

import (
	"github.com/lucasb-eyer/go-colorful"
)

// MustHex parses a "#rrggbb" color and panics if it is malformed. It is
// meant for color literals.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
