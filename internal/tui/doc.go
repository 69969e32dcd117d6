// Package tui provides the interactive Bubble Tea browser for a
// controller-backed table: paging, sorting, searching and enumerated filters
// driven from the keyboard.
package tui
