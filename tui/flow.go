package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cinetix-cli/booking"
	"cinetix-cli/model"
	"cinetix-cli/service"
	"cinetix-cli/store"
	"cinetix-cli/ticket"
)

const sessionExpiredMessage = "Your session has expired. Please log in again."

var knownPaymentMethods = []string{"QRIS", "Credit Card", "Virtual Account"}

// paymentMethodsWith puts the configured method first.
func paymentMethodsWith(preferred string) []string {
	out := []string{preferred}
	for _, method := range knownPaymentMethods {
		if method != preferred {
			out = append(out, method)
		}
	}
	return out
}

func (m appModel) startBooking() (appModel, tea.Cmd, bool) {
	draft, err := booking.NewDraft(m.session.User, m.movie, m.fee)
	if err != nil {
		return m, errWithReturnCmd(err, stateHome), true
	}
	m.draft = draft
	m.cinema = model.Cinema{}
	m.date = ""
	m.time = ""
	m.grid = nil
	m.notice = ""
	m.state = stateLoadingCinemas
	return m, tea.Batch(m.fetchCinemasCmd(), m.spinner.Tick), true
}

func (m appModel) openBooking(cinemas []model.Cinema) (appModel, tea.Cmd) {
	dates := booking.ShowDates(m.movie)
	cmds := []tea.Cmd{
		m.cinemaList.SetItems(buildCinemaItems(cinemas)),
		m.dateList.SetItems(buildDateItems(dates)),
		m.timeList.SetItems(nil),
	}
	m.cinemaList.Select(0)
	m.dateList.Select(0)
	m.bookingFocus = fieldCinema
	m.notice = ""
	switch {
	case len(cinemas) == 0:
		m.notice = "No cinemas available."
	case len(dates) == 0:
		m.notice = "No showtimes available for this movie."
	}
	m.state = stateBooking
	return m, tea.Batch(cmds...)
}

func (m appModel) handleBookingKey(key string) (appModel, tea.Cmd, bool) {
	switch key {
	case "tab", "right":
		m.bookingFocus = (m.bookingFocus + 1) % 3
		return m, nil, true
	case "shift+tab", "left":
		m.bookingFocus = (m.bookingFocus + 2) % 3
		return m, nil, true
	case "c":
		return m.proceedToSeats()
	case "enter":
		switch m.bookingFocus {
		case fieldCinema:
			item, ok := m.cinemaList.SelectedItem().(cinemaItem)
			if !ok {
				return m, nil, true
			}
			m.cinema = item.cinema
			m.notice = ""
			m.bookingFocus = fieldDate
			return m, nil, true
		case fieldDate:
			item, ok := m.dateList.SelectedItem().(dateItem)
			if !ok {
				return m, nil, true
			}
			m.date = item.date
			m.time = ""
			times := booking.ShowTimes(m.movie, m.date)
			cmd := m.timeList.SetItems(buildTimeItems(times))
			m.timeList.Select(0)
			if len(times) == 0 {
				m.notice = "No showtimes available for this date."
				return m, cmd, true
			}
			m.notice = ""
			m.bookingFocus = fieldTime
			return m, cmd, true
		case fieldTime:
			item, ok := m.timeList.SelectedItem().(timeItem)
			if !ok {
				return m, nil, true
			}
			m.time = item.time
			return m.proceedToSeats()
		}
	}
	return m, nil, false
}

func (m appModel) proceedToSeats() (appModel, tea.Cmd, bool) {
	if m.cinema.Id == "" || m.date == "" || m.time == "" {
		m.notice = "Please select cinema, date, and time first."
		return m, nil, true
	}
	draft, err := m.draft.WithShowtime(m.cinema, m.date, m.time)
	if err != nil {
		return m, errWithReturnCmd(err, stateBooking), true
	}
	m.draft = draft
	m.grid = booking.DefaultSeatGrid()
	m.seatRow = 0
	m.seatCol = 0
	m.notice = ""
	m.state = stateSeats
	return m, nil, true
}

func (m appModel) handleSeatKey(key string) (appModel, tea.Cmd, bool) {
	if m.grid == nil {
		return m, errWithReturnCmd(&booking.MissingFieldError{Stage: booking.StageSeats, Field: "cinema"}, stateBooking), true
	}
	rows := m.grid.Rows()
	switch key {
	case "up", "k":
		if m.seatRow > 0 {
			m.seatRow--
		}
	case "down", "j":
		if m.seatRow < len(rows)-1 {
			m.seatRow++
		}
	case "left", "h":
		if m.seatCol > 0 {
			m.seatCol--
		}
	case "right", "l":
		if m.seatCol < m.grid.Columns()-1 {
			m.seatCol++
		}
	case " ", "x":
		if len(rows) == 0 {
			return m, nil, true
		}
		id := booking.SeatID(rows[m.seatRow], m.seatCol+1)
		if err := m.grid.Toggle(id); err != nil {
			m.notice = "Seat " + id + " is unavailable."
			return m, nil, true
		}
		m.notice = ""
	case "enter":
		seats, err := m.grid.Confirm()
		if err != nil {
			m.notice = "Please select at least one seat."
			return m, nil, true
		}
		draft, err := m.draft.WithSeats(seats)
		if err != nil {
			return m, errWithReturnCmd(err, stateSeats), true
		}
		m.draft = draft
		m.notice = ""
		m.state = stateSummary
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m appModel) paymentMethod() string {
	if len(m.paymentMethods) == 0 {
		return booking.DefaultPaymentMethod
	}
	return m.paymentMethods[m.paymentIndex%len(m.paymentMethods)]
}

func (m appModel) confirmSummary() (appModel, tea.Cmd, bool) {
	draft, err := m.draft.WithOrder(booking.GenerateOrderNumber(), m.paymentMethod())
	if err != nil {
		return m, errWithReturnCmd(err, stateSummary), true
	}
	m.draft = draft
	m.notice = ""
	m.state = statePayment
	return m, nil, true
}

func (m appModel) submitBooking() (appModel, tea.Cmd, bool) {
	if err := booking.ValidateSubmission(m.draft); err != nil {
		return m, errWithReturnCmd(errors.New(validationMessage(err)), statePayment), true
	}
	m.notice = ""
	m.state = stateSubmitting
	return m, tea.Batch(m.createBookingCmd(m.session.Token, m.draft.BookingRequest()), m.spinner.Tick), true
}

func (m appModel) handleBookingResult(msg bookingMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error("create booking", zap.Error(msg.err), zap.String("order_number", m.draft.OrderNumber()))
		if service.IsUnauthorized(msg.err) {
			return m.expireSession()
		}
		return m, errWithReturnCmd(errors.New(service.UserMessage(msg.err, "Booking failed")), statePayment)
	}
	draft, err := m.draft.Confirm()
	if err != nil {
		return m, errWithReturnCmd(err, stateHome)
	}
	receipt, err := draft.Receipt(m.now())
	if err != nil {
		return m, errWithReturnCmd(err, stateHome)
	}
	if msg.confirmation.OrderNumber != "" {
		receipt.BookingCode = msg.confirmation.OrderNumber
	}
	if err := store.RememberTicket(receipt); err != nil {
		m.log.Warn("remember ticket", zap.Error(err))
	}
	m.log.Info("booking confirmed",
		zap.String("order_number", receipt.BookingCode),
		zap.Strings("seats", receipt.Seats),
		zap.Int64("total", receipt.TotalPrice),
	)
	m.draft = draft
	m.receipt = receipt
	m.notice = ""
	m.state = stateReceipt
	return m, nil
}

// expireSession drops a session the API no longer accepts and asks the user
// to log in again.
func (m appModel) expireSession() (tea.Model, tea.Cmd) {
	if err := store.ClearSession(); err != nil {
		m.log.Error("clear session", zap.Error(err))
	}
	m = m.resetNavigation()
	m.session = store.Session{}
	m.state = stateLogin
	cmd := m.loginForm.focusOn(loginEmail)
	m.loginForm.err = sessionExpiredMessage
	return m, cmd
}

func (m appModel) fetchMoviesCmd() tea.Cmd {
	api, timeout, log := m.api, m.timeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		movies, err := api.ListMovies(ctx)
		if err != nil {
			return moviesMsg{origin: stateLoadingMovies, err: err}
		}
		return moviesMsg{origin: stateLoadingMovies, movies: movies, cinemaNames: lookupCinemaNames(ctx, api, log, movies)}
	}
}

// lookupCinemaNames resolves each distinct movie cinema id once. Failed
// lookups are logged and left out.
func lookupCinemaNames(ctx context.Context, api API, log *zap.Logger, movies []model.Movie) map[string]string {
	names := make(map[string]string)
	tried := make(map[string]bool)
	for _, movie := range movies {
		id := strings.TrimSpace(movie.Cinema)
		if id == "" || tried[id] {
			continue
		}
		tried[id] = true
		cinema, err := api.GetCinema(ctx, id)
		if err != nil {
			log.Warn("resolve movie cinema", zap.String("cinema_id", id), zap.Error(err))
			continue
		}
		names[id] = cinema.Name
	}
	return names
}

func (m appModel) fetchMovieCmd(movieID string) tea.Cmd {
	api, timeout, log := m.api, m.timeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		movie, err := api.GetMovie(ctx, movieID)
		if err != nil {
			return movieMsg{origin: stateLoadingMovie, err: err}
		}
		msg := movieMsg{origin: stateLoadingMovie, movie: movie}
		if id := strings.TrimSpace(movie.Cinema); id != "" {
			cinema, err := api.GetCinema(ctx, id)
			if err != nil {
				log.Warn("resolve movie cinema", zap.String("cinema_id", id), zap.Error(err))
			} else {
				msg.cinemaName = cinema.Name
			}
		}
		return msg
	}
}

func (m appModel) fetchDirectoryCmd() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cinemas, err := api.ListCinemaDirectory(ctx)
		return cinemasMsg{origin: stateLoadingDirectory, cinemas: cinemas, err: err}
	}
}

func (m appModel) fetchCinemasCmd() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cinemas, err := api.ListCinemas(ctx)
		return cinemasMsg{origin: stateLoadingCinemas, cinemas: cinemas, err: err}
	}
}

func (m appModel) createBookingCmd(token string, req model.BookingRequest) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		conf, err := api.CreateBooking(ctx, token, req)
		return bookingMsg{origin: stateSubmitting, confirmation: conf, err: err}
	}
}

func exportTicketCmd(receipt booking.Receipt) tea.Cmd {
	return func() tea.Msg {
		path, err := ticket.Export(receipt, "")
		return exportMsg{path: path, err: err}
	}
}
