package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"cinetix-cli/booking"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(18)
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	seatAvailableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatUnavailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatSelectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5")).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))
)

type landingPage struct {
	title string
	body  string
}

var landingPages = []landingPage{
	{title: "Get all your services in one place.", body: "Browse movies, pick a cinema and choose your seats."},
	{title: "Start now!", body: "Log in or create an account to book your first ticket."},
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func field(label, value string) string {
	return labelStyle.Render(label) + value
}

func (m appModel) place(content string) string {
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
	}
	return content
}

func (m appModel) splashView() string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(1, 6).
		Render("CINETIX")
	content := logo + "\n\n" + hint("Book your movie tickets")
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m appModel) landingView() string {
	page := landingPages[m.landingPage]
	dots := make([]string, len(landingPages))
	for i := range landingPages {
		if i == m.landingPage {
			dots[i] = focusStyle.Render("●")
		} else {
			dots[i] = hint("○")
		}
	}
	action := "Next"
	if m.landingPage == len(landingPages)-1 {
		action = "Done"
	}
	content := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render(page.title),
		"",
		page.body,
		"",
		strings.Join(dots, " "),
		"",
		hint("enter " + action + " • s Skip"),
	}, "\n")
	return m.place(cardStyle.Render(content))
}

func (m appModel) movieDetailView() string {
	mv := m.movie
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(mv.Title))
	b.WriteString("\n")
	b.WriteString(hint(movieItem{movie: mv}.Description()))
	b.WriteString("\n\n")
	if name := m.cinemaNames[mv.Cinema]; name != "" {
		b.WriteString(field("Cinema", name) + "\n")
	}
	if mv.Director != "" {
		b.WriteString(field("Director", mv.Director) + "\n")
	}
	if len(mv.Writer) > 0 {
		b.WriteString(field("Writers", strings.Join(mv.Writer, ", ")) + "\n")
	}
	if mv.ReleaseDate != "" {
		b.WriteString(field("Release", mv.ReleaseDate) + "\n")
	}
	if mv.Synopsis != "" {
		width := 72
		if m.width > 8 && m.width-4 < width {
			width = m.width - 4
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(mv.Synopsis))
		b.WriteString("\n")
	}
	dates := booking.ShowDates(mv)
	b.WriteString("\n")
	if len(dates) == 0 {
		b.WriteString(hint("No showtimes scheduled."))
	} else {
		b.WriteString(hint(fmt.Sprintf("Showing on %d date(s) from %s.", len(dates), booking.FormatShowDate(dates[0]))))
	}
	return b.String()
}

func (m appModel) bookingView() string {
	column := func(l list.Model, focused bool) string {
		style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
		if focused {
			style = style.BorderForeground(lipgloss.Color("63"))
		} else {
			style = style.BorderForeground(lipgloss.Color("8"))
		}
		return style.Render(l.View())
	}
	timeCol := column(m.timeList, m.bookingFocus == fieldTime)
	if m.date == "" {
		timeCol = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1).
			Render("Time\n\n" + hint("Pick a date first"))
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		column(m.cinemaList, m.bookingFocus == fieldCinema),
		column(m.dateList, m.bookingFocus == fieldDate),
		timeCol,
	)

	picked := []string{}
	if m.cinema.Name != "" {
		picked = append(picked, "Cinema: "+m.cinema.Name)
	}
	if m.date != "" {
		picked = append(picked, "Date: "+booking.FormatShowDate(m.date))
	}
	if m.time != "" {
		picked = append(picked, "Time: "+m.time)
	}
	summary := hint("Nothing selected yet.")
	if len(picked) > 0 {
		summary = strings.Join(picked, " • ")
	}
	if m.cinema.Price > 0 {
		summary += "\n" + hint(booking.FormatRupiah(m.cinema.Price)+" per seat")
	}
	return columns + "\n\n" + summary
}

func (m appModel) renderSeatGrid() string {
	if m.grid == nil {
		return "No seat map data."
	}
	rows := m.grid.Rows()
	cols := m.grid.Columns()
	const cellWidth = 4

	var b strings.Builder
	gridWidth := cols*(cellWidth+1) - 1
	bar := screenBarBlock(gridWidth, "CINEMA SCREEN")
	screenStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	indent := strings.Repeat(" ", 3)
	b.WriteString(indent + screenStyle.Render(bar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(bar.mid) + "\n")
	b.WriteString(indent + screenStyle.Render(bar.bot) + "\n\n")

	for r, row := range rows {
		b.WriteString(fmt.Sprintf("%2s ", row))
		for c := 1; c <= cols; c++ {
			id := booking.SeatID(row, c)
			text := id
			var style lipgloss.Style
			switch m.grid.Status(id) {
			case booking.SeatUnavailable:
				text = "XX"
				style = seatUnavailableStyle
			case booking.SeatSelected:
				style = seatSelectedStyle
			default:
				style = seatAvailableStyle
			}
			if r == m.seatRow && c-1 == m.seatCol {
				style = style.Reverse(true).Underline(true)
			}
			b.WriteString(style.Render(padCell(text, cellWidth)))
			if c < cols {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	legend := strings.Join([]string{
		seatAvailableStyle.Render("■ Available"),
		seatUnavailableStyle.Render("■ Unavailable"),
		seatSelectedStyle.Render("■ Selected"),
	}, "  ")
	b.WriteString("\n" + legend + "\n\n")

	selected := m.grid.Selected()
	if len(selected) == 0 {
		b.WriteString(hint("No seats selected"))
	} else {
		b.WriteString(field("Seats", strings.Join(selected, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(field("Total", totalStyle.Render(booking.FormatRupiah(m.grid.Subtotal(m.cinema.Price)))))
	return b.String()
}

func (m appModel) summaryView() string {
	d := m.draft
	n := d.TicketCount()
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(d.Movie().Title),
		d.Cinema().Name,
		fmt.Sprintf("%s, %s", booking.FormatShowDate(d.Date()), d.Time()),
		"",
		field("Seat", strings.Join(d.Seats(), ", ")),
		field("Payment Method", m.paymentMethod()),
		field("Regular Seat", fmt.Sprintf("%s x %d", booking.FormatRupiah(d.TicketPrice()), n)),
		field("Convenience Fee", fmt.Sprintf("%s x %d", booking.FormatRupiah(d.ConvenienceFee()), n)),
		"",
		field("Actual Pay", totalStyle.Render(booking.FormatRupiah(d.Total()))),
	}
	return cardStyle.Render(lipgloss.NewStyle().Bold(true).Render("Order Summary") + "\n\n" + strings.Join(lines, "\n"))
}

func (m appModel) paymentView() string {
	d := m.draft
	qr := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(1, 2).
		Render(d.PaymentQR())
	lines := []string{
		field("Order Number", d.OrderNumber()),
		field("Seats", strings.Join(d.Seats(), ", ")),
		field("Total", totalStyle.Render(booking.FormatRupiah(d.Total()))),
		field("Payment Method", d.PaymentMethod()),
		"",
		qr,
		"",
		hint("Scan the code to pay, then press enter."),
	}
	return cardStyle.Render(lipgloss.NewStyle().Bold(true).Render("Payment") + "\n\n" + strings.Join(lines, "\n"))
}

func (m appModel) receiptView() string {
	r := m.receipt
	lines := []string{
		totalStyle.Render("Payment Successful!"),
		"",
		field("Total", totalStyle.Render(booking.FormatRupiah(r.TotalPrice))),
		field("Movie", r.MovieTitle),
		field("Date", fmt.Sprintf("%s, %s", booking.FormatShowDate(r.Date), r.Time)),
		field("Booking Code", r.BookingCode),
	}
	return m.place(cardStyle.Render(strings.Join(lines, "\n")))
}

func (m appModel) ticketView() string {
	r := m.receipt
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(r.MovieTitle),
		"",
		field("Cinema", r.CinemaName),
		field("Date", fmt.Sprintf("%s, %s", booking.FormatShowDate(r.Date), r.Time)),
		field("Seats", strings.Join(r.Seats, ", ")),
		field("Booking Code", focusStyle.Render(r.BookingCode)),
		field("Payment", r.PaymentMethod),
		field("Total", totalStyle.Render(booking.FormatRupiah(r.TotalPrice))),
		"",
		hint("Show this code at the cinema counter."),
	}
	return m.place(cardStyle.Render(lipgloss.NewStyle().Bold(true).Render("Your Ticket") + "\n\n" + strings.Join(lines, "\n")))
}

func (m appModel) profileView() string {
	u := m.session.User
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Profile"),
		"",
		field("Name", u.Name),
		field("Email", u.Email),
	}
	if m.state == stateConfirmLogout {
		lines = append(lines, "", noticeStyle.Render("Are you sure you want to log out? (y/n)"))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
