// Package tui provides the primary terminal user interface implementation.
package tui

type state int

const (
	editState state = iota + 1
	pickState
	errorState
)
