package booking

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultSeatGrid_Enumerates6x9(t *testing.T) {
	g := DefaultSeatGrid()

	seats := g.Seats()
	if len(seats) != 54 {
		t.Fatalf("expected 54 seats, got %d", len(seats))
	}
	if seats[0] != "H1" || seats[8] != "H9" || seats[53] != "C9" {
		t.Fatalf("unexpected enumeration order: first=%s ninth=%s last=%s", seats[0], seats[8], seats[53])
	}
}

func TestSeatGrid_ToggleAddsAndRemoves(t *testing.T) {
	g := DefaultSeatGrid()

	if err := g.Toggle("D5"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := g.Toggle("D6"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := g.Selected(); !reflect.DeepEqual(got, []string{"D5", "D6"}) {
		t.Fatalf("unexpected selection: %v", got)
	}
	if g.Status("D5") != SeatSelected {
		t.Fatalf("expected D5 selected, got %s", g.Status("D5"))
	}

	if err := g.Toggle("D5"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := g.Selected(); !reflect.DeepEqual(got, []string{"D6"}) {
		t.Fatalf("unexpected selection after untoggle: %v", got)
	}
	if g.Status("D5") != SeatAvailable {
		t.Fatalf("expected D5 available, got %s", g.Status("D5"))
	}
}

func TestSeatGrid_UnavailableSeatsNeverSelected(t *testing.T) {
	g := DefaultSeatGrid()
	_ = g.Toggle("E1")

	for _, id := range DefaultUnavailable {
		before := g.Selected()
		err := g.Toggle(id)
		if err == nil {
			t.Fatalf("expected error toggling %s", id)
		}
		if !errors.Is(err, ErrSeatUnavailable) && !errors.Is(err, ErrUnknownSeat) {
			t.Fatalf("unexpected error for %s: %v", id, err)
		}
		if after := g.Selected(); !reflect.DeepEqual(before, after) {
			t.Fatalf("selection changed after toggling %s: %v -> %v", id, before, after)
		}
	}

	if g.Status("G7") != SeatUnavailable {
		t.Fatalf("expected G7 unavailable, got %s", g.Status("G7"))
	}
}

func TestSeatGrid_SelectableAndUnavailableDisjoint(t *testing.T) {
	g := DefaultSeatGrid()

	selectable := map[string]bool{}
	for _, id := range g.Selectable() {
		selectable[id] = true
	}
	for _, id := range DefaultUnavailable {
		if selectable[id] {
			t.Fatalf("seat %s is both selectable and unavailable", id)
		}
	}
	if len(selectable) != 54-4 {
		t.Fatalf("expected 50 selectable seats, got %d", len(selectable))
	}
}

func TestSeatGrid_UnknownSeat(t *testing.T) {
	g := DefaultSeatGrid()

	if err := g.Toggle("Z1"); !errors.Is(err, ErrUnknownSeat) {
		t.Fatalf("expected ErrUnknownSeat, got %v", err)
	}
	if g.Count() != 0 {
		t.Fatalf("expected empty selection, got %v", g.Selected())
	}
}

func TestSeatGrid_ConfirmRequiresSelection(t *testing.T) {
	g := DefaultSeatGrid()

	if _, err := g.Confirm(); !errors.Is(err, ErrNoSeatsSelected) {
		t.Fatalf("expected ErrNoSeatsSelected, got %v", err)
	}

	_ = g.Toggle("c3")
	seats, err := g.Confirm()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !reflect.DeepEqual(seats, []string{"C3"}) {
		t.Fatalf("unexpected seats: %v", seats)
	}
}

func TestSeatGrid_Subtotal(t *testing.T) {
	g := DefaultSeatGrid()
	_ = g.Toggle("D5")
	_ = g.Toggle("D6")

	if got := g.Subtotal(50000); got != 100000 {
		t.Fatalf("expected subtotal 100000, got %d", got)
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:       "Rp 0",
		500:     "Rp 500",
		5000:    "Rp 5.000",
		100000:  "Rp 100.000",
		105000:  "Rp 105.000",
		1250000: "Rp 1.250.000",
		-7500:   "Rp -7.500",
	}
	for amount, want := range cases {
		if got := FormatRupiah(amount); got != want {
			t.Fatalf("FormatRupiah(%d): expected %q, got %q", amount, want, got)
		}
	}
}
