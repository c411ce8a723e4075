package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"cinetix-cli/booking"
	"cinetix-cli/config"
	"cinetix-cli/model"
	"cinetix-cli/service"
	"cinetix-cli/store"
)

const splashDuration = time.Second

// API is the part of the booking client the screens use.
type API interface {
	ListMovies(ctx context.Context) ([]model.Movie, error)
	GetMovie(ctx context.Context, movieID string) (model.Movie, error)
	GetCinema(ctx context.Context, cinemaID string) (model.Cinema, error)
	ListCinemas(ctx context.Context) ([]model.Cinema, error)
	ListCinemaDirectory(ctx context.Context) ([]model.Cinema, error)
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (string, error)
	CreateBooking(ctx context.Context, token string, req model.BookingRequest) (model.BookingConfirmation, error)
}

type appState int

const (
	stateSplash appState = iota
	stateLanding
	stateLogin
	stateRegister
	stateLoadingMovies
	stateHome
	stateLoadingDirectory
	stateDirectory
	stateLoadingMovie
	stateMovieDetail
	stateLoadingCinemas
	stateBooking
	stateSeats
	stateSummary
	statePayment
	stateSubmitting
	stateReceipt
	stateTicket
	stateProfile
	stateConfirmLogout
	stateTickets
	stateError
)

type bookingField int

const (
	fieldCinema bookingField = iota
	fieldDate
	fieldTime
)

type appModel struct {
	api     API
	log     *zap.Logger
	timeout time.Duration
	fee     int64
	now     func() time.Time

	state     appState
	lastState appState
	err       error
	notice    string

	width  int
	height int

	session     store.Session
	landingPage int

	loginForm    form
	registerForm form

	movieList     list.Model
	directoryList list.Model
	cinemaList    list.Model
	dateList      list.Model
	timeList      list.Model
	ticketList    list.Model
	bookingFocus  bookingField

	// cinemaNames maps a movie's cinema id to the name shown on its card.
	cinemaNames map[string]string

	movie   model.Movie
	cinema  model.Cinema
	date    string
	time    string
	draft   booking.Draft
	grid    *booking.SeatGrid
	seatRow int
	seatCol int

	paymentMethods []string
	paymentIndex   int

	receipt      booking.Receipt
	ticketReturn appState

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type splashDoneMsg struct{}

type moviesMsg struct {
	origin      appState
	movies      []model.Movie
	cinemaNames map[string]string
	err         error
}

type movieMsg struct {
	origin     appState
	movie      model.Movie
	cinemaName string
	err        error
}

type cinemasMsg struct {
	origin  appState
	cinemas []model.Cinema
	err     error
}

type authMsg struct {
	auth model.AuthResponse
	err  error
}

type registerMsg struct {
	message string
	err     error
}

type bookingMsg struct {
	origin       appState
	confirmation model.BookingConfirmation
	err          error
}

type exportMsg struct {
	path string
	err  error
}

// New builds the screen flow. A nil cfg falls back to the built-in defaults.
func New(api API, cfg *config.Config, log *zap.Logger) tea.Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := appModel{
		api:     api,
		log:     log.With(zap.String("component", "tui")),
		timeout: 12 * time.Second,
		fee:     booking.DefaultConvenienceFee,
		now:     time.Now,
		state:   stateSplash,

		cinemaNames: map[string]string{},
	}
	defaultMethod := booking.DefaultPaymentMethod
	if cfg != nil {
		if cfg.API.Timeout > 0 {
			m.timeout = cfg.API.Timeout
		}
		if cfg.Booking.ConvenienceFee >= 0 {
			m.fee = cfg.Booking.ConvenienceFee
		}
		if method := strings.TrimSpace(cfg.Booking.PaymentMethod); method != "" {
			defaultMethod = method
		}
	}
	m.paymentMethods = paymentMethodsWith(defaultMethod)

	m.loginForm = newLoginForm()
	m.registerForm = newRegisterForm()

	m.movieList = newList("Now Showing")
	m.directoryList = newList("Cinemas")
	m.directoryList.Filter = substringFilter
	m.cinemaList = newPickerList("Cinema")
	m.dateList = newPickerList("Date")
	m.timeList = newPickerList("Time")
	m.ticketList = newList("My Tickets")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splashDuration, func(time.Time) tea.Msg { return splashDoneMsg{} }),
		m.spinner.Tick,
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if f := m.activeForm(); f != nil && !f.busy {
			if next, cmd, handled := m.handleFormKey(msg); handled {
				return next, cmd
			}
			var cmd tea.Cmd
			*f, cmd = f.update(msg)
			return m, cmd
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() || m.loginForm.busy || m.registerForm.busy {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case splashDoneMsg:
		if m.state != stateSplash {
			return m, nil
		}
		return m.routeFromSplash()

	case authMsg:
		return m.handleAuth(msg)

	case registerMsg:
		m.registerForm.busy = false
		if msg.err != nil {
			m.registerForm.err = service.UserMessage(msg.err, "Registration failed")
			return m, nil
		}
		email := m.registerForm.value(regEmail)
		m.registerForm.reset()
		m.loginForm.reset()
		m.loginForm.inputs[loginEmail].SetValue(email)
		m.loginForm.focusOn(loginPassword)
		m.notice = msg.message
		m.state = stateLogin
		return m, nil

	case moviesMsg:
		if msg.origin != m.state {
			return m, nil
		}
		if msg.err != nil {
			m.log.Error("load movies", zap.Error(msg.err))
			return m, errCmd(fmt.Errorf("Failed to load movies: %s", service.UserMessage(msg.err, msg.err.Error())))
		}
		for id, name := range msg.cinemaNames {
			m.cinemaNames[id] = name
		}
		cmd := m.movieList.SetItems(buildMovieItems(msg.movies, m.cinemaNames))
		m.state = stateHome
		return m, cmd

	case cinemasMsg:
		if msg.origin != m.state {
			return m, nil
		}
		if msg.err != nil {
			m.log.Error("load cinemas", zap.Error(msg.err))
			return m, errCmd(fmt.Errorf("Failed to load cinemas: %s", service.UserMessage(msg.err, msg.err.Error())))
		}
		if msg.origin == stateLoadingDirectory {
			cmd := m.directoryList.SetItems(buildCinemaItems(msg.cinemas))
			m.state = stateDirectory
			return m, cmd
		}
		return m.openBooking(msg.cinemas)

	case movieMsg:
		if msg.origin != m.state {
			return m, nil
		}
		if msg.err != nil {
			m.log.Error("load movie", zap.Error(msg.err))
			return m, errCmd(fmt.Errorf("Failed to load movie details: %s", service.UserMessage(msg.err, msg.err.Error())))
		}
		m.movie = msg.movie
		if msg.cinemaName != "" {
			m.cinemaNames[msg.movie.Cinema] = msg.cinemaName
		}
		m.state = stateMovieDetail
		return m, nil

	case bookingMsg:
		if msg.origin != m.state {
			return m, nil
		}
		return m.handleBookingResult(msg)

	case exportMsg:
		if msg.err != nil {
			m.log.Error("export ticket", zap.Error(msg.err))
			m.notice = "Could not save ticket: " + msg.err.Error()
			return m, nil
		}
		m.notice = "Ticket saved to " + msg.path
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateHome:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateDirectory:
		m.directoryList, cmd = m.directoryList.Update(msg)
	case stateBooking:
		switch m.bookingFocus {
		case fieldCinema:
			m.cinemaList, cmd = m.cinemaList.Update(msg)
		case fieldDate:
			m.dateList, cmd = m.dateList.Update(msg)
		case fieldTime:
			m.timeList, cmd = m.timeList.Update(msg)
		}
	case stateTickets:
		m.ticketList, cmd = m.ticketList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	var body string
	switch m.state {
	case stateSplash:
		return m.splashView()
	case stateLanding:
		body = m.landingView()
	case stateLogin:
		body = m.loginForm.view("Login", m.spinner.View())
	case stateRegister:
		body = m.registerForm.view("Create Account", m.spinner.View())
	case stateLoadingMovies, stateLoadingDirectory, stateLoadingMovie, stateLoadingCinemas, stateSubmitting:
		body = m.loadingView()
	case stateHome:
		body = m.movieList.View()
	case stateDirectory:
		body = m.directoryList.View()
	case stateMovieDetail:
		body = m.movieDetailView()
	case stateBooking:
		body = m.bookingView()
	case stateSeats:
		body = m.renderSeatGrid()
	case stateSummary:
		body = m.summaryView()
	case statePayment:
		body = m.paymentView()
	case stateReceipt:
		body = m.receiptView()
	case stateTicket:
		body = m.ticketView()
	case stateProfile, stateConfirmLogout:
		body = m.profileView()
	case stateTickets:
		body = m.ticketList.View()
	case stateError:
		msg := "Something went wrong."
		if m.err != nil {
			msg = m.err.Error()
		}
		body = errorStyle.Render(msg) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	}
	if m.notice != "" && m.state != stateError {
		body += "\n\n" + noticeStyle.Render(m.notice)
	}
	return header + "\n\n" + body
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Cinetix")
	sub := []string{}
	if m.session.Valid() {
		sub = append(sub, "Hi, "+m.session.User.Name)
	}
	if m.movie.Title != "" && m.state >= stateMovieDetail && m.state <= stateSubmitting {
		sub = append(sub, "Movie: "+m.movie.Title)
	}
	if m.cinema.Name != "" && m.state >= stateSeats && m.state <= stateSubmitting {
		sub = append(sub, "Cinema: "+m.cinema.Name)
	}
	if m.date != "" && m.time != "" && m.state >= stateSeats && m.state <= stateSubmitting {
		sub = append(sub, fmt.Sprintf("Show: %s, %s", booking.FormatShowDate(m.date), m.time))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(m.hints())
}

func (m appModel) hints() string {
	switch m.state {
	case stateLanding:
		return "enter next • s skip • ctrl+c quit"
	case stateLogin:
		return "tab next field • enter login • ctrl+r create account • ctrl+c quit"
	case stateRegister:
		return "tab next field • enter register • esc back to login"
	case stateHome:
		return "type to filter • enter details • tab cinemas • ctrl+t my tickets • ctrl+p profile • ctrl+c quit"
	case stateDirectory:
		return "type to search • esc back"
	case stateMovieDetail:
		return "enter book tickets • esc back"
	case stateBooking:
		return "tab switch column • enter select • c continue • esc back"
	case stateSeats:
		return "arrows move • space toggle seat • enter confirm • esc back"
	case stateSummary:
		return "m change payment method • enter confirm payment • esc back"
	case statePayment:
		return "enter pay now • esc back"
	case stateReceipt:
		return "enter view ticket • p save PDF • esc home"
	case stateTicket:
		return "enter done • p save PDF • esc back"
	case stateProfile:
		return "l log out • esc back"
	case stateConfirmLogout:
		return "y confirm • n cancel"
	case stateTickets:
		return "type to filter • enter open ticket • esc back"
	default:
		return "ctrl+c quit • esc back"
	}
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	key := msg.String()
	if key == "esc" {
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	}
	if key == "q" && m.state != stateSubmitting {
		return m, tea.Quit, true
	}

	switch m.state {
	case stateLanding:
		switch key {
		case "enter", "right", "l":
			if m.landingPage < len(landingPages)-1 {
				m.landingPage++
				return m, nil, true
			}
			return m.finishOnboarding()
		case "left", "h":
			if m.landingPage > 0 {
				m.landingPage--
			}
			return m, nil, true
		case "s":
			return m.finishOnboarding()
		}

	case stateHome:
		switch key {
		case "enter":
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			return m.loadMovie(item.movie.Id)
		case "tab":
			m.notice = ""
			m.state = stateLoadingDirectory
			return m, tea.Batch(m.fetchDirectoryCmd(), m.spinner.Tick), true
		case "ctrl+p":
			m.notice = ""
			m.state = stateProfile
			return m, nil, true
		case "ctrl+t":
			return m.openTickets()
		}

	case stateMovieDetail:
		if key == "enter" {
			return m.startBooking()
		}

	case stateBooking:
		return m.handleBookingKey(key)

	case stateSeats:
		return m.handleSeatKey(key)

	case stateSummary:
		switch key {
		case "m":
			m.paymentIndex = (m.paymentIndex + 1) % len(m.paymentMethods)
			return m, nil, true
		case "enter":
			return m.confirmSummary()
		}

	case statePayment:
		if key == "enter" {
			return m.submitBooking()
		}

	case stateReceipt:
		switch key {
		case "enter":
			m.notice = ""
			m.ticketReturn = stateHome
			m.state = stateTicket
			return m, nil, true
		case "p":
			return m, exportTicketCmd(m.receipt), true
		}

	case stateTicket:
		switch key {
		case "enter":
			return m.leaveTicket()
		case "p":
			return m, exportTicketCmd(m.receipt), true
		}

	case stateProfile:
		if key == "l" {
			m.state = stateConfirmLogout
			return m, nil, true
		}

	case stateConfirmLogout:
		switch key {
		case "y", "enter":
			return m.logout()
		case "n":
			m.state = stateProfile
			return m, nil, true
		}

	case stateTickets:
		if key == "enter" {
			item, ok := m.ticketList.SelectedItem().(ticketItem)
			if !ok {
				return m, nil, true
			}
			m.receipt = item.receipt
			m.ticketReturn = stateTickets
			m.state = stateTicket
			return m, nil, true
		}

	case stateError:
		if key == "enter" {
			next, cmd := m.goBack()
			return next, cmd, true
		}
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	m.notice = ""
	switch m.state {
	case stateRegister:
		m.registerForm.reset()
		m.state = stateLogin
	case stateDirectory, stateLoadingDirectory, stateLoadingMovie, stateMovieDetail, stateProfile, stateTickets:
		m.state = stateHome
	case stateLoadingCinemas, stateBooking:
		m.state = stateMovieDetail
	case stateSeats:
		m.state = stateBooking
	case stateSummary:
		m.state = stateSeats
	case statePayment:
		m.state = stateSummary
	case stateReceipt:
		return m.returnHome()
	case stateTicket:
		return m.leaveTicketCmd()
	case stateConfirmLogout:
		m.state = stateProfile
	case stateError:
		m.state = m.lastState
		if m.state == stateLoadingMovies {
			return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
		}
	}
	return m, nil
}

func (m appModel) routeFromSplash() (tea.Model, tea.Cmd) {
	seen, err := store.OnboardingSeen()
	if err != nil {
		m.log.Warn("read onboarding flag", zap.Error(err))
	}
	if !seen {
		m.state = stateLanding
		return m, nil
	}
	return m.routeToSessionOrLogin()
}

func (m appModel) routeToSessionOrLogin() (appModel, tea.Cmd) {
	session, err := store.LoadSession()
	if err != nil {
		if !errors.Is(err, store.ErrNoSession) {
			m.log.Warn("load session", zap.Error(err))
		}
		m.state = stateLogin
		cmd := m.loginForm.focusOn(loginEmail)
		return m, cmd
	}
	m.session = session
	m.state = stateLoadingMovies
	return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m appModel) finishOnboarding() (appModel, tea.Cmd, bool) {
	if err := store.MarkOnboardingSeen(); err != nil {
		m.log.Warn("save onboarding flag", zap.Error(err))
	}
	m.landingPage = 0
	next, cmd := m.routeToSessionOrLogin()
	return next, cmd, true
}

func (m appModel) handleAuth(msg authMsg) (tea.Model, tea.Cmd) {
	m.loginForm.busy = false
	if msg.err != nil {
		m.log.Info("login rejected", zap.Error(msg.err))
		m.loginForm.err = service.UserMessage(msg.err, "Login failed")
		return m, nil
	}
	session := store.Session{Token: msg.auth.Token}
	if msg.auth.User != nil {
		session.User = *msg.auth.User
	}
	if err := store.SaveSession(session); err != nil {
		m.log.Error("save session", zap.Error(err))
		m.loginForm.err = "Could not save session: " + err.Error()
		return m, nil
	}
	m.session = session
	m.loginForm.reset()
	m.notice = ""
	m.state = stateLoadingMovies
	return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m appModel) logout() (appModel, tea.Cmd, bool) {
	if err := store.ClearSession(); err != nil {
		m.log.Error("clear session", zap.Error(err))
		return m, errWithReturnCmd(fmt.Errorf("Failed to log out: %w", err), stateProfile), true
	}
	m = m.resetNavigation()
	m.session = store.Session{}
	m.state = stateLogin
	cmd := m.loginForm.focusOn(loginEmail)
	return m, cmd, true
}

// resetNavigation drops everything picked since login.
func (m appModel) resetNavigation() appModel {
	m.movie = model.Movie{}
	m.cinema = model.Cinema{}
	m.date = ""
	m.time = ""
	m.draft = booking.Draft{}
	m.grid = nil
	m.receipt = booking.Receipt{}
	m.notice = ""
	m.err = nil
	m.movieList.ResetFilter()
	m.movieList.SetItems(nil)
	m.directoryList.ResetFilter()
	m.ticketList.ResetFilter()
	m.loginForm.reset()
	m.registerForm.reset()
	return m
}

func (m appModel) returnHome() (appModel, tea.Cmd) {
	m.notice = ""
	m.draft = booking.Draft{}
	m.grid = nil
	m.cinema = model.Cinema{}
	m.date = ""
	m.time = ""
	if len(m.movieList.Items()) == 0 {
		m.state = stateLoadingMovies
		return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
	}
	m.state = stateHome
	return m, nil
}

func (m appModel) leaveTicket() (appModel, tea.Cmd, bool) {
	next, cmd := m.leaveTicketCmd()
	return next, cmd, true
}

func (m appModel) leaveTicketCmd() (appModel, tea.Cmd) {
	if m.ticketReturn == stateTickets {
		m.notice = ""
		m.state = stateTickets
		return m, nil
	}
	return m.returnHome()
}

func (m appModel) openTickets() (appModel, tea.Cmd, bool) {
	tickets, err := store.LoadTickets()
	if err != nil {
		return m, errWithReturnCmd(err, stateHome), true
	}
	m.notice = ""
	cmd := m.ticketList.SetItems(buildTicketItems(tickets))
	if len(tickets) == 0 {
		m.notice = "No tickets yet."
	}
	m.state = stateTickets
	return m, cmd, true
}

func (m appModel) loadMovie(movieID string) (appModel, tea.Cmd, bool) {
	m.notice = ""
	m.state = stateLoadingMovie
	return m, tea.Batch(m.fetchMovieCmd(movieID), m.spinner.Tick), true
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateHome:
		return &m.movieList
	case stateDirectory:
		return &m.directoryList
	case stateTickets:
		return &m.ticketList
	default:
		return nil
	}
}

func (m *appModel) activeForm() *form {
	switch m.state {
	case stateLogin:
		return &m.loginForm
	case stateRegister:
		return &m.registerForm
	default:
		return nil
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	listPtr.SetFilterText(listPtr.FilterValue() + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := trimLastRune(listPtr.FilterValue())
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m appModel) isLoadingState() bool {
	switch m.state {
	case stateLoadingMovies, stateLoadingDirectory, stateLoadingMovie, stateLoadingCinemas, stateSubmitting:
		return true
	default:
		return false
	}
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingMovies:
		title = "Loading movies"
	case stateLoadingDirectory:
		title = "Loading cinemas"
	case stateLoadingMovie:
		title = "Loading movie details"
	case stateLoadingCinemas:
		title = "Loading showtimes"
	case stateSubmitting:
		title = "Processing payment"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.directoryList.SetSize(m.width, h)
	m.ticketList.SetSize(m.width, h)

	colW := m.width/3 - 2
	if colW < 16 {
		colW = 16
	}
	pickerH := h - 4
	if pickerH < 6 {
		pickerH = 6
	}
	m.cinemaList.SetSize(colW, pickerH)
	m.dateList.SetSize(colW, pickerH)
	m.timeList.SetSize(colW, pickerH)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithReturnCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
		}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateLoadingMovies
	case stateLoadingDirectory, stateLoadingMovie:
		return stateHome
	case stateLoadingCinemas:
		return stateMovieDetail
	case stateSubmitting:
		return statePayment
	case stateError:
		return stateHome
	default:
		return state
	}
}
