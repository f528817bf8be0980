package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/srg/ringlykit/internal/bleadapter"
	"github.com/srg/ringlykit/pkg/ringly/central"
)

// newCentral wires a Central against the live go-ble adapter.
func newCentral(logger *logrus.Logger) *central.Central {
	return central.New(bleadapter.NewGoBLE(logger), logger)
}

// connectionStateColor returns the color used to print a peripheral's
// connection state, disabled automatically when stdout isn't a terminal
// (checked via golang.org/x/term, the same pairing the teacher's
// internal/testutils/textassert.go makes with github.com/fatih/color).
func connectionStateColor(state string) *color.Color {
	c := color.New(color.FgWhite)
	switch state {
	case "connected":
		c = color.New(color.FgGreen)
	case "connecting":
		c = color.New(color.FgYellow)
	case "disconnected":
		c = color.New(color.FgRed)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
