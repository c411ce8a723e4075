package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cinetix-cli/model"
)

const (
	DefaultConvenienceFee int64 = 5000
	DefaultPaymentMethod        = "QRIS"
	StatusBooked                = "booked"
)

var ErrAlreadyConfirmed = errors.New("booking is already confirmed")

// Stage is how far a Draft has progressed through the booking flow.
type Stage int

const (
	StageMovie Stage = iota
	StageShowtime
	StageSeats
	StageOrdered
	StageConfirmed
)

func (s Stage) String() string {
	switch s {
	case StageMovie:
		return "movie"
	case StageShowtime:
		return "showtime"
	case StageSeats:
		return "seats"
	case StageOrdered:
		return "order"
	case StageConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// MissingFieldError reports a field a stage needs but the draft lacks.
type MissingFieldError struct {
	Stage Stage
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s for %s step", e.Field, e.Stage)
}

// IsMissingField reports whether err is a *MissingFieldError.
func IsMissingField(err error) bool {
	var missing *MissingFieldError
	return errors.As(err, &missing)
}

// Draft is the accreting record of one booking. Every transition returns a
// new Draft; a Draft value is never modified after it is built.
type Draft struct {
	stage          Stage
	user           model.User
	movie          model.Movie
	cinema         model.Cinema
	date           string
	time           string
	seats          []string
	convenienceFee int64
	orderNumber    string
	paymentMethod  string
}

// NewDraft starts a booking for a movie. A negative fee is treated as zero.
func NewDraft(user model.User, movie model.Movie, convenienceFee int64) (Draft, error) {
	if strings.TrimSpace(movie.Id) == "" {
		return Draft{}, &MissingFieldError{Stage: StageMovie, Field: "movie"}
	}
	if convenienceFee < 0 {
		convenienceFee = 0
	}
	return Draft{
		stage:          StageMovie,
		user:           user,
		movie:          movie,
		convenienceFee: convenienceFee,
	}, nil
}

// WithShowtime records cinema, date and time. Choosing a new showtime drops
// any seats or order picked for the previous one.
func (d Draft) WithShowtime(cinema model.Cinema, date, showTime string) (Draft, error) {
	if d.stage == StageConfirmed {
		return Draft{}, ErrAlreadyConfirmed
	}
	if strings.TrimSpace(d.movie.Id) == "" {
		return Draft{}, &MissingFieldError{Stage: StageShowtime, Field: "movie"}
	}
	switch {
	case strings.TrimSpace(cinema.Id) == "":
		return Draft{}, &MissingFieldError{Stage: StageShowtime, Field: "cinema"}
	case strings.TrimSpace(date) == "":
		return Draft{}, &MissingFieldError{Stage: StageShowtime, Field: "date"}
	case strings.TrimSpace(showTime) == "":
		return Draft{}, &MissingFieldError{Stage: StageShowtime, Field: "time"}
	}

	next := d
	next.stage = StageShowtime
	next.cinema = cinema
	next.date = date
	next.time = showTime
	next.seats = nil
	next.orderNumber = ""
	next.paymentMethod = ""
	return next, nil
}

// WithSeats records the confirmed seat selection.
func (d Draft) WithSeats(seats []string) (Draft, error) {
	if d.stage == StageConfirmed {
		return Draft{}, ErrAlreadyConfirmed
	}
	if d.stage < StageShowtime {
		return Draft{}, &MissingFieldError{Stage: StageSeats, Field: "cinema"}
	}
	if len(seats) == 0 {
		return Draft{}, ErrNoSeatsSelected
	}

	next := d
	next.stage = StageSeats
	next.seats = append([]string(nil), seats...)
	next.orderNumber = ""
	next.paymentMethod = ""
	return next, nil
}

// WithOrder attaches the order number and payment method chosen on the
// order summary.
func (d Draft) WithOrder(orderNumber, paymentMethod string) (Draft, error) {
	if d.stage == StageConfirmed {
		return Draft{}, ErrAlreadyConfirmed
	}
	if d.stage < StageSeats {
		return Draft{}, &MissingFieldError{Stage: StageOrdered, Field: "seats"}
	}
	if strings.TrimSpace(orderNumber) == "" {
		return Draft{}, &MissingFieldError{Stage: StageOrdered, Field: "orderNumber"}
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return Draft{}, &MissingFieldError{Stage: StageOrdered, Field: "paymentMethod"}
	}

	next := d
	next.stage = StageOrdered
	next.orderNumber = orderNumber
	next.paymentMethod = paymentMethod
	return next, nil
}

// Confirm marks the draft as accepted by the server.
func (d Draft) Confirm() (Draft, error) {
	if d.stage == StageConfirmed {
		return Draft{}, ErrAlreadyConfirmed
	}
	if d.stage < StageOrdered {
		return Draft{}, &MissingFieldError{Stage: StageConfirmed, Field: "orderNumber"}
	}
	next := d
	next.stage = StageConfirmed
	return next, nil
}

func (d Draft) Stage() Stage          { return d.stage }
func (d Draft) User() model.User      { return d.user }
func (d Draft) Movie() model.Movie    { return d.movie }
func (d Draft) Cinema() model.Cinema  { return d.cinema }
func (d Draft) Date() string          { return d.date }
func (d Draft) Time() string          { return d.time }
func (d Draft) OrderNumber() string   { return d.orderNumber }
func (d Draft) PaymentMethod() string { return d.paymentMethod }
func (d Draft) ConvenienceFee() int64 { return d.convenienceFee }
func (d Draft) Confirmed() bool       { return d.stage == StageConfirmed }

func (d Draft) Seats() []string {
	return append([]string(nil), d.seats...)
}

func (d Draft) TicketCount() int {
	return len(d.seats)
}

func (d Draft) TicketPrice() int64 {
	return d.cinema.Price
}

// Subtotal is ticket price times seat count.
func (d Draft) Subtotal() int64 {
	return d.cinema.Price * int64(len(d.seats))
}

// FeeTotal is the convenience fee times seat count.
func (d Draft) FeeTotal() int64 {
	return d.convenienceFee * int64(len(d.seats))
}

// Total is what the user pays: (ticket price + fee) per seat.
func (d Draft) Total() int64 {
	return d.Subtotal() + d.FeeTotal()
}

// BookingRequest builds the POST /api/bookings body.
func (d Draft) BookingRequest() model.BookingRequest {
	return model.BookingRequest{
		UserId:         d.user.Id,
		MovieId:        d.movie.Id,
		CinemaId:       d.cinema.Id,
		CinemaName:     d.cinema.Name,
		MovieTitle:     d.movie.Title,
		MoviePoster:    d.movie.Poster,
		OrderNumber:    d.orderNumber,
		PaymentMethod:  d.paymentMethod,
		Seats:          d.Seats(),
		Date:           d.date,
		Time:           d.time,
		TicketPrice:    d.cinema.Price,
		TotalPrice:     d.Total(),
		TotalTickets:   len(d.seats),
		ConvenienceFee: d.convenienceFee,
		Status:         StatusBooked,
		PaymentSuccess: true,
	}
}

// ValidateSubmission checks that every identifying field is present before
// the booking is sent.
func ValidateSubmission(d Draft) error {
	if d.stage < StageOrdered {
		return &MissingFieldError{Stage: StageOrdered, Field: "orderNumber"}
	}
	req := d.BookingRequest()
	return Validate(&req)
}

// PaymentQR is the text encoded in the payment QR code.
func (d Draft) PaymentQR() string {
	return fmt.Sprintf("Order Number: %s\nSeats: %s\nTotal: %s",
		d.orderNumber, strings.Join(d.seats, ", "), FormatRupiah(d.Total()))
}

// Receipt holds the final facts of a confirmed booking.
type Receipt struct {
	MovieTitle     string    `json:"movie_title"`
	MoviePoster    string    `json:"movie_poster"`
	CinemaName     string    `json:"cinema_name"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Seats          []string  `json:"seats"`
	BookingCode    string    `json:"booking_code"`
	PaymentMethod  string    `json:"payment_method"`
	TicketPrice    int64     `json:"ticket_price"`
	ConvenienceFee int64     `json:"convenience_fee"`
	TotalPrice     int64     `json:"total_price"`
	BookedAt       time.Time `json:"booked_at"`
}

// Receipt returns the receipt for a confirmed draft.
func (d Draft) Receipt(bookedAt time.Time) (Receipt, error) {
	if d.stage != StageConfirmed {
		return Receipt{}, &MissingFieldError{Stage: StageConfirmed, Field: "confirmation"}
	}
	return Receipt{
		MovieTitle:     d.movie.Title,
		MoviePoster:    d.movie.Poster,
		CinemaName:     d.cinema.Name,
		Date:           d.date,
		Time:           d.time,
		Seats:          d.Seats(),
		BookingCode:    d.orderNumber,
		PaymentMethod:  d.paymentMethod,
		TicketPrice:    d.cinema.Price,
		ConvenienceFee: d.convenienceFee,
		TotalPrice:     d.Total(),
		BookedAt:       bookedAt,
	}, nil
}
