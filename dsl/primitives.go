package dsl

import (
	sc "github.com/reoring/sensorcheck"
)

// String returns a node accepting JSON strings.
func String() *sc.Node { return &sc.Node{Kind: sc.NodeString} }

// Number returns a node accepting JSON numbers, integral or fractional.
func Number() *sc.Node { return &sc.Node{Kind: sc.NodeNumber} }

// Bool returns a node accepting true and false.
func Bool() *sc.Node { return &sc.Node{Kind: sc.NodeBoolean} }
