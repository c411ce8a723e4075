package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNoSeatsSelected = errors.New("please select at least one seat")
	ErrSeatUnavailable = errors.New("seat is unavailable")
	ErrUnknownSeat     = errors.New("seat is not part of this hall")
)

var (
	DefaultRows        = []string{"H", "G", "F", "E", "D", "C"}
	DefaultColumns     = 9
	DefaultUnavailable = []string{"D9", "D10", "H9", "H10", "G7", "G8"}
)

type SeatStatus int

const (
	SeatAvailable SeatStatus = iota
	SeatUnavailable
	SeatSelected
)

func (s SeatStatus) String() string {
	switch s {
	case SeatAvailable:
		return "available"
	case SeatUnavailable:
		return "unavailable"
	case SeatSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// SeatID formats a seat identifier from its row letter and column number.
func SeatID(row string, column int) string {
	return strings.ToUpper(strings.TrimSpace(row)) + strconv.Itoa(column)
}

// SeatGrid is the fixed hall layout plus the current selection.
// Selection keeps tap order.
type SeatGrid struct {
	rows        []string
	columns     int
	unavailable map[string]bool
	known       map[string]bool
	selected    []string
}

func NewSeatGrid(rows []string, columns int, unavailable []string) *SeatGrid {
	g := &SeatGrid{
		rows:        make([]string, 0, len(rows)),
		columns:     columns,
		unavailable: make(map[string]bool, len(unavailable)),
		known:       make(map[string]bool, len(rows)*max(columns, 0)),
	}
	for _, row := range rows {
		row = strings.ToUpper(strings.TrimSpace(row))
		if row == "" {
			continue
		}
		g.rows = append(g.rows, row)
		for col := 1; col <= columns; col++ {
			g.known[SeatID(row, col)] = true
		}
	}
	for _, id := range unavailable {
		g.unavailable[normalizeSeat(id)] = true
	}
	return g
}

func DefaultSeatGrid() *SeatGrid {
	return NewSeatGrid(DefaultRows, DefaultColumns, DefaultUnavailable)
}

func (g *SeatGrid) Rows() []string {
	return append([]string(nil), g.rows...)
}

func (g *SeatGrid) Columns() int {
	return g.columns
}

// Seats enumerates every seat in row order, then column order.
func (g *SeatGrid) Seats() []string {
	out := make([]string, 0, len(g.rows)*g.columns)
	for _, row := range g.rows {
		for col := 1; col <= g.columns; col++ {
			out = append(out, SeatID(row, col))
		}
	}
	return out
}

func (g *SeatGrid) Status(id string) SeatStatus {
	id = normalizeSeat(id)
	if g.unavailable[id] {
		return SeatUnavailable
	}
	if g.isSelected(id) {
		return SeatSelected
	}
	return SeatAvailable
}

// Toggle flips the selection of a seat. Unavailable and unknown seats are
// rejected and leave the selection untouched.
func (g *SeatGrid) Toggle(id string) error {
	id = normalizeSeat(id)
	if !g.known[id] {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, id)
	}
	if g.unavailable[id] {
		return fmt.Errorf("%w: %s", ErrSeatUnavailable, id)
	}
	for i, existing := range g.selected {
		if existing == id {
			g.selected = append(g.selected[:i:i], g.selected[i+1:]...)
			return nil
		}
	}
	g.selected = append(g.selected, id)
	return nil
}

func (g *SeatGrid) Selected() []string {
	return append([]string(nil), g.selected...)
}

func (g *SeatGrid) Count() int {
	return len(g.selected)
}

func (g *SeatGrid) Clear() {
	g.selected = nil
}

// Confirm returns the selected seats, or ErrNoSeatsSelected when empty.
func (g *SeatGrid) Confirm() ([]string, error) {
	if len(g.selected) == 0 {
		return nil, ErrNoSeatsSelected
	}
	return g.Selected(), nil
}

// Subtotal is seat count times the per-seat price. The convenience fee is
// added later on the order summary.
func (g *SeatGrid) Subtotal(price int64) int64 {
	return int64(len(g.selected)) * price
}

// Selectable lists every seat that may enter the selection.
func (g *SeatGrid) Selectable() []string {
	var out []string
	for _, id := range g.Seats() {
		if !g.unavailable[id] {
			out = append(out, id)
		}
	}
	return out
}

func (g *SeatGrid) isSelected(id string) bool {
	for _, existing := range g.selected {
		if existing == id {
			return true
		}
	}
	return false
}

func normalizeSeat(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
