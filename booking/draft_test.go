package booking

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"cinetix-cli/model"
)

func testMovie() model.Movie {
	return model.Movie{Id: "m1", Title: "Dune", Poster: "https://img/dune.jpg"}
}

func testCinema(price int64) model.Cinema {
	return model.Cinema{Id: "c1", Name: "XXI Plaza", Price: price}
}

func draftWithSeats(t *testing.T, price, fee int64, seats ...string) Draft {
	t.Helper()
	d, err := NewDraft(model.User{Id: "u1", Name: "Ana"}, testMovie(), fee)
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	d, err = d.WithShowtime(testCinema(price), "2024-12-05", "19:00")
	if err != nil {
		t.Fatalf("WithShowtime: %v", err)
	}
	d, err = d.WithSeats(seats)
	if err != nil {
		t.Fatalf("WithSeats: %v", err)
	}
	return d
}

func TestDraft_TotalExample(t *testing.T) {
	d := draftWithSeats(t, 50000, 5000, "D5", "D6")

	if got := d.Total(); got != 110000 {
		t.Fatalf("expected total 110000, got %d", got)
	}
}

func TestDraft_TotalFormula(t *testing.T) {
	prices := []int64{0, 35000, 50000, 100000}
	fees := []int64{0, 2500, 5000}
	all := DefaultSeatGrid().Selectable()

	for n := 1; n <= 6; n++ {
		for _, p := range prices {
			for _, f := range fees {
				d := draftWithSeats(t, p, f, all[:n]...)
				want := int64(n)*p + int64(n)*f
				if got := d.Total(); got != want {
					t.Fatalf("n=%d p=%d f=%d: expected %d, got %d", n, p, f, want, got)
				}
				if d.Subtotal()+d.FeeTotal() != d.Total() {
					t.Fatalf("subtotal and fee do not add up to total")
				}
			}
		}
	}
}

func TestDraft_DisplayedAmounts(t *testing.T) {
	d := draftWithSeats(t, 100000, 5000, "E4")

	if got := FormatRupiah(d.Subtotal()); got != "Rp 100.000" {
		t.Fatalf("unexpected subtotal: %q", got)
	}
	if got := FormatRupiah(d.Total()); got != "Rp 105.000" {
		t.Fatalf("unexpected total: %q", got)
	}
}

func TestDraft_TransitionsDoNotMutate(t *testing.T) {
	base := draftWithSeats(t, 50000, 5000, "D5")
	seats := base.Seats()
	seats[0] = "X1"

	if base.Seats()[0] != "D5" {
		t.Fatal("seat slice leaked out of draft")
	}

	ordered, err := base.WithOrder("ORD123456", DefaultPaymentMethod)
	if err != nil {
		t.Fatalf("WithOrder: %v", err)
	}
	if base.OrderNumber() != "" || base.Stage() != StageSeats {
		t.Fatalf("original draft changed: stage=%s order=%q", base.Stage(), base.OrderNumber())
	}
	if ordered.Stage() != StageOrdered {
		t.Fatalf("expected ordered stage, got %s", ordered.Stage())
	}
}

func TestDraft_MissingFields(t *testing.T) {
	if _, err := NewDraft(model.User{}, model.Movie{}, 5000); !IsMissingField(err) {
		t.Fatalf("expected missing movie error, got %v", err)
	}

	d, _ := NewDraft(model.User{Id: "u1"}, testMovie(), 5000)
	_, err := d.WithShowtime(model.Cinema{}, "2024-12-05", "19:00")
	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "cinema" {
		t.Fatalf("expected missing cinema, got %v", err)
	}

	if _, err := d.WithSeats([]string{"D5"}); !IsMissingField(err) {
		t.Fatalf("expected seats before showtime to fail, got %v", err)
	}
	if _, err := d.WithOrder("ORD000001", "QRIS"); !IsMissingField(err) {
		t.Fatalf("expected order before seats to fail, got %v", err)
	}
	if _, err := d.Confirm(); !IsMissingField(err) {
		t.Fatalf("expected confirm before order to fail, got %v", err)
	}
}

func TestDraft_EmptySeatSelection(t *testing.T) {
	d, _ := NewDraft(model.User{Id: "u1"}, testMovie(), 5000)
	d, _ = d.WithShowtime(testCinema(50000), "2024-12-05", "19:00")

	if _, err := d.WithSeats(nil); !errors.Is(err, ErrNoSeatsSelected) {
		t.Fatalf("expected ErrNoSeatsSelected, got %v", err)
	}
}

func TestDraft_NewShowtimeDropsSeats(t *testing.T) {
	d := draftWithSeats(t, 50000, 5000, "D5")

	d, err := d.WithShowtime(testCinema(60000), "2024-12-06", "21:00")
	if err != nil {
		t.Fatalf("WithShowtime: %v", err)
	}
	if d.TicketCount() != 0 || d.Stage() != StageShowtime {
		t.Fatalf("expected seats cleared, got %v at %s", d.Seats(), d.Stage())
	}
}

func TestDraft_ConfirmAndReceipt(t *testing.T) {
	d := draftWithSeats(t, 50000, 5000, "D5", "D6")
	d, _ = d.WithOrder("ORD654321", "QRIS")

	if _, err := d.Receipt(time.Now()); !IsMissingField(err) {
		t.Fatalf("expected receipt before confirm to fail, got %v", err)
	}

	confirmed, err := d.Confirm()
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if _, err := confirmed.Confirm(); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}

	bookedAt := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	receipt, err := confirmed.Receipt(bookedAt)
	if err != nil {
		t.Fatalf("Receipt: %v", err)
	}
	if receipt.BookingCode != "ORD654321" || receipt.TotalPrice != 110000 || receipt.CinemaName != "XXI Plaza" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestValidateSubmission(t *testing.T) {
	d := draftWithSeats(t, 50000, 5000, "D5")
	if err := ValidateSubmission(d); !IsMissingField(err) {
		t.Fatalf("expected missing order number, got %v", err)
	}

	d, _ = d.WithOrder("ORD111111", "QRIS")
	if err := ValidateSubmission(d); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}

	anonymous, _ := NewDraft(model.User{}, testMovie(), 5000)
	anonymous, _ = anonymous.WithShowtime(testCinema(50000), "2024-12-05", "19:00")
	anonymous, _ = anonymous.WithSeats([]string{"D5"})
	anonymous, _ = anonymous.WithOrder("ORD111111", "QRIS")
	err := ValidateSubmission(anonymous)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["UserId"]; !ok {
		t.Fatalf("expected UserId to fail, got %+v", verr.Fields)
	}
}

func TestDraft_BookingRequest(t *testing.T) {
	d := draftWithSeats(t, 50000, 5000, "D5", "D6")
	d, _ = d.WithOrder("ORD222222", "QRIS")

	req := d.BookingRequest()
	if req.TotalPrice != 110000 || req.TotalTickets != 2 || req.Status != StatusBooked || !req.PaymentSuccess {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.UserId != "u1" || req.MovieId != "m1" || req.CinemaId != "c1" {
		t.Fatalf("unexpected ids: %+v", req)
	}
}

func TestDraft_PaymentQR(t *testing.T) {
	d := draftWithSeats(t, 50000, 5000, "D5", "D6")
	d, _ = d.WithOrder("ORD333333", "QRIS")

	want := "Order Number: ORD333333\nSeats: D5, D6\nTotal: Rp 110.000"
	if got := d.PaymentQR(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD\d{6}$`)
	for i := 0; i < 50; i++ {
		if n := GenerateOrderNumber(); !pattern.MatchString(n) {
			t.Fatalf("unexpected order number %q", n)
		}
	}
}

func TestShowDates(t *testing.T) {
	movie := model.Movie{Showtimes: model.Showtimes{
		Times: map[string][]string{
			"2024-12-06": {"13:00"},
			"2024-12-05": {"10:00", "19:00"},
		},
	}}

	dates := ShowDates(movie)
	if strings.Join(dates, ",") != "2024-12-05,2024-12-06" {
		t.Fatalf("unexpected dates: %v", dates)
	}
	if got := ShowTimes(movie, "2024-12-05"); len(got) != 2 {
		t.Fatalf("unexpected times: %v", got)
	}
	if got := ShowTimes(movie, "2024-12-07"); got != nil {
		t.Fatalf("expected no times, got %v", got)
	}
}

func TestFormatShowDate(t *testing.T) {
	if got := FormatShowDate("2024-12-05"); got != "December 05" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := FormatShowDate("soon"); got != "soon" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
