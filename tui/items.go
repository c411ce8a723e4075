package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"

	"cinetix-cli/booking"
	"cinetix-cli/model"
)

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

// newPickerList is a compact list for the cinema, date and time columns.
func newPickerList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	l := list.New([]list.Item{}, delegate, 24, 12)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

// substringFilter keeps targets containing term, ignoring case, in their
// original order.
func substringFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(strings.TrimSpace(term))
	ranks := make([]list.Rank, 0, len(targets))
	for i, target := range targets {
		lower := strings.ToLower(target)
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(lower[:idx])
		n := utf8.RuneCountInString(term)
		matched := make([]int, n)
		for j := range matched {
			matched[j] = start + j
		}
		ranks = append(ranks, list.Rank{Index: i, MatchedIndexes: matched})
	}
	return ranks
}

type movieItem struct {
	movie      model.Movie
	cinemaName string
}

func (i movieItem) Title() string {
	return i.movie.Title
}

func (i movieItem) Description() string {
	parts := []string{}
	if i.cinemaName != "" {
		parts = append(parts, i.cinemaName)
	}
	if r := i.movie.Rating.String(); r != "" {
		parts = append(parts, "★ "+r)
	}
	if len(i.movie.Genre) > 0 {
		parts = append(parts, strings.Join(i.movie.Genre, ", "))
	}
	if i.movie.Duration > 0 {
		parts = append(parts, formatDuration(i.movie.Duration))
	}
	return strings.Join(parts, " • ")
}

func (i movieItem) FilterValue() string {
	return i.movie.Title
}

type cinemaItem struct {
	cinema model.Cinema
}

func (i cinemaItem) Title() string {
	return i.cinema.Name
}

func (i cinemaItem) Description() string {
	parts := []string{}
	if i.cinema.Location != "" {
		parts = append(parts, i.cinema.Location)
	}
	if i.cinema.Price > 0 {
		parts = append(parts, booking.FormatRupiah(i.cinema.Price))
	}
	return strings.Join(parts, " • ")
}

func (i cinemaItem) FilterValue() string {
	return i.cinema.Name
}

type dateItem struct {
	date string
}

func (i dateItem) Title() string       { return booking.FormatShowDate(i.date) }
func (i dateItem) Description() string { return i.date }
func (i dateItem) FilterValue() string { return i.date }

type timeItem struct {
	time string
}

func (i timeItem) Title() string       { return i.time }
func (i timeItem) Description() string { return "" }
func (i timeItem) FilterValue() string { return i.time }

type ticketItem struct {
	receipt booking.Receipt
}

func (i ticketItem) Title() string {
	return i.receipt.MovieTitle
}

func (i ticketItem) Description() string {
	return fmt.Sprintf("%s • %s, %s • %s",
		i.receipt.BookingCode,
		booking.FormatShowDate(i.receipt.Date),
		i.receipt.Time,
		strings.Join(i.receipt.Seats, ", "),
	)
}

func (i ticketItem) FilterValue() string {
	return i.receipt.MovieTitle + " " + i.receipt.BookingCode
}

func buildMovieItems(movies []model.Movie, cinemaNames map[string]string) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie, cinemaName: cinemaNames[movie.Cinema]})
	}
	return items
}

func buildCinemaItems(cinemas []model.Cinema) []list.Item {
	items := make([]list.Item, 0, len(cinemas))
	for _, cinema := range cinemas {
		items = append(items, cinemaItem{cinema: cinema})
	}
	return items
}

func buildDateItems(dates []string) []list.Item {
	items := make([]list.Item, 0, len(dates))
	for _, date := range dates {
		items = append(items, dateItem{date: date})
	}
	return items
}

func buildTimeItems(times []string) []list.Item {
	items := make([]list.Item, 0, len(times))
	for _, t := range times {
		items = append(items, timeItem{time: t})
	}
	return items
}

func buildTicketItems(receipts []booking.Receipt) []list.Item {
	items := make([]list.Item, 0, len(receipts))
	for _, r := range receipts {
		items = append(items, ticketItem{receipt: r})
	}
	return items
}

func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
