package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

type appState int

const (
	stateSelectSnacks appState = iota
	stateEnterName
	stateSelectMovie
	stateSelectShowTime
	stateEnterSeat
	stateEnterTickets
	stateBooked
	stateEnterFeedback
	stateDone
)

const wholeNumberMessage = "Please enter a whole number."

type Options struct {
	Catalog  *service.Catalog
	Pricing  service.Pricing
	IsMember bool
	Logger   *slog.Logger
}

type appModel struct {
	catalog *service.Catalog
	pricing service.Pricing
	member  bool
	logger  *slog.Logger

	state  appState
	width  int
	height int

	snacks    model.SnackQueue
	user      *model.User
	movie     model.Movie
	showTimes []string
	showTime  string
	seat      int
	receipt   *service.Receipt

	status    string
	statusErr bool

	snackList    list.Model
	movieList    list.Model
	showTimeList list.Model
	actionList   list.Model
	input        textinput.Model
}

func New(opts Options) tea.Model {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = service.DefaultCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := appModel{
		catalog: catalog,
		pricing: opts.Pricing,
		member:  opts.IsMember,
		logger:  logger,
		state:   stateSelectSnacks,
	}

	m.snackList = newList("Pantry • pick snacks before booking")
	m.snackList.SetItems(buildSnackItems())
	m.movieList = newList("Select Movie")
	m.movieList.SetFilteringEnabled(true)
	m.movieList.SetShowFilter(true)
	m.movieList.SetItems(buildMovieItems(catalog.ListSorted()))
	m.showTimeList = newList("Select Show Time")
	m.actionList = newList("Options")
	m.actionList.SetItems(buildActionItems())

	m.input = textinput.New()
	m.input.CharLimit = 120

	return m
}

// Run starts the program and returns the summary of the finished session.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) (string, error) {
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	final, err := tea.NewProgram(New(opts), programOpts...).Run()
	if err != nil {
		return "", err
	}
	return Summary(final), nil
}

// Summary renders what the session ended with, for printing after the
// program leaves the alternate screen.
func Summary(m tea.Model) string {
	app, ok := m.(appModel)
	if !ok || app.receipt == nil {
		return "No booking was made.\n"
	}
	var b strings.Builder
	b.WriteString(receiptLines(*app.receipt))
	if booking := app.user.Booking(); booking != nil && booking.Canceled() {
		b.WriteString("Status: canceled\n")
	}
	for _, fb := range app.user.Feedback() {
		fmt.Fprintf(&b, "Feedback for %s: %s\n", fb.MovieTitle, fb.Text)
	}
	b.WriteString("Thank you for using the Movie Booking System!\n")
	return b.String()
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectSnacks:
		m.snackList, cmd = m.snackList.Update(msg)
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectShowTime:
		m.showTimeList, cmd = m.showTimeList.Update(msg)
	case stateBooked:
		m.actionList, cmd = m.actionList.Update(msg)
	case stateEnterName, stateEnterSeat, stateEnterTickets, stateEnterFeedback:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.state = stateDone
		return m, tea.Quit, true
	case "q":
		if m.activeList() != nil {
			m.state = stateDone
			return m, tea.Quit, true
		}
	case "esc":
		if listPtr := m.activeList(); listPtr != nil && (listPtr.SettingFilter() || listPtr.IsFiltered()) {
			listPtr.ResetFilter()
			return m, nil, true
		}
		return m.goBack(), nil, true
	}

	if msg.Type != tea.KeyEnter {
		return m, nil, false
	}

	m.status = ""
	m.statusErr = false

	switch m.state {
	case stateSelectSnacks:
		item, ok := m.snackList.SelectedItem().(snackItem)
		if !ok {
			return m, nil, true
		}
		if item.done {
			m.state = stateEnterName
			cmd := m.focusInput("", "your name")
			return m, cmd, true
		}
		m.snacks.Enqueue(item.name)
		m.status = fmt.Sprintf("Added %s", item.name)
	case stateEnterName:
		m.user = model.NewUser(strings.TrimSpace(m.input.Value()), m.member)
		m.input.Blur()
		m.state = stateSelectMovie
	case stateSelectMovie:
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		showTimes, err := m.catalog.ShowTimesFor(item.movie.Title)
		if err != nil {
			m.setError(err.Error())
			return m, nil, true
		}
		m.movie = item.movie
		m.showTimes = showTimes
		m.showTimeList.Title = fmt.Sprintf("Show times • %s", item.movie.Title)
		m.showTimeList.SetItems(buildShowTimeItems(showTimes))
		m.showTimeList.Select(0)
		m.state = stateSelectShowTime
	case stateSelectShowTime:
		item, ok := m.showTimeList.SelectedItem().(showTimeItem)
		if !ok {
			return m, nil, true
		}
		m.showTime = item.label
		m.state = stateEnterSeat
		cmd := m.focusInput("", "seat number (1-100)")
		return m, cmd, true
	case stateEnterSeat:
		seat, ok := parseNumber(m.input.Value())
		if !ok {
			m.setError(wholeNumberMessage)
			return m, nil, true
		}
		m.seat = seat
		m.state = stateEnterTickets
		cmd := m.focusInput("", "number of tickets")
		return m, cmd, true
	case stateEnterTickets:
		tickets, ok := parseNumber(m.input.Value())
		if !ok {
			m.setError(wholeNumberMessage)
			return m, nil, true
		}
		m.input.Blur()
		m.book(tickets)
	case stateBooked:
		item, ok := m.actionList.SelectedItem().(actionItem)
		if !ok {
			return m, nil, true
		}
		return m.runAction(item.action)
	case stateEnterFeedback:
		text := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.state = stateBooked
		if text == "" {
			return m, nil, true
		}
		fb := m.user.GiveFeedback(m.movie, text)
		m.logger.Info("feedback submitted", "movie", fb.MovieTitle)
		m.status = fmt.Sprintf("Feedback submitted for %s: %s", fb.MovieTitle, fb.Text)
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *appModel) book(tickets int) {
	receipt := service.Checkout(m.user, m.pricing, service.BookingRequest{
		Movie:    m.movie,
		ShowTime: m.showTime,
		Seat:     m.seat,
		Tickets:  tickets,
	})
	m.receipt = &receipt
	m.logger.Info("booking created",
		"booking_id", receipt.BookingID,
		"movie", receipt.MovieTitle,
		"show_time", receipt.ShowTime,
		"seat", receipt.Seat,
		"tickets", receipt.Tickets,
	)
	m.actionList.Select(0)
	m.state = stateBooked
}

func (m appModel) runAction(action bookedAction) (appModel, tea.Cmd, bool) {
	switch action {
	case actionCancel:
		canceled, err := m.user.CancelTicket()
		if errors.Is(err, model.ErrNothingToCancel) {
			m.setError("No active booking to cancel.")
			return m, nil, true
		}
		m.logger.Info("booking canceled", "booking_id", m.user.Booking().ID)
		m.status = fmt.Sprintf("Booking canceled for %s at %s, Seat: %d", canceled.MovieTitle, canceled.ShowTime, canceled.Seat)
	case actionFeedback:
		m.state = stateEnterFeedback
		cmd := m.focusInput("", fmt.Sprintf("what did you think of %s?", m.movie.Title))
		return m, cmd, true
	case actionExit:
		m.state = stateDone
		return m, tea.Quit, true
	}
	return m, nil, true
}

func (m appModel) goBack() appModel {
	m.status = ""
	m.statusErr = false
	switch m.state {
	case stateEnterName:
		m.input.Blur()
		m.state = stateSelectSnacks
	case stateSelectShowTime:
		m.state = stateSelectMovie
	case stateEnterSeat:
		m.input.Blur()
		m.state = stateSelectShowTime
	case stateEnterTickets:
		m.input.SetValue(strconv.Itoa(m.seat))
		m.input.Placeholder = "seat number (1-100)"
		m.state = stateEnterSeat
	case stateEnterFeedback:
		m.input.Blur()
		m.state = stateBooked
	}
	return m
}

func (m *appModel) focusInput(value string, placeholder string) tea.Cmd {
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *appModel) setError(message string) {
	m.status = message
	m.statusErr = true
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil || !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		listPtr.SetFilterText(listPtr.FilterValue() + string(msg.Runes))
		return true
	case tea.KeySpace:
		listPtr.SetFilterText(listPtr.FilterValue() + " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		value := listPtr.FilterValue()
		if value == "" {
			return false
		}
		value = trimLastRune(value)
		if value == "" {
			listPtr.ResetFilter()
			return true
		}
		listPtr.SetFilterText(value)
		return true
	default:
		return false
	}
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectSnacks:
		return &m.snackList
	case stateSelectMovie:
		return &m.movieList
	case stateSelectShowTime:
		return &m.showTimeList
	case stateBooked:
		return &m.actionList
	default:
		return nil
	}
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 8
	if h < 6 {
		h = 6
	}
	m.snackList.SetSize(m.width, h)
	m.movieList.SetSize(m.width, h)
	m.showTimeList.SetSize(m.width, h)
	m.actionList.SetSize(m.width, h)
	m.input.Width = max(20, m.width-4)
}

func (m appModel) View() string {
	header := m.headerView()
	body := ""
	switch m.state {
	case stateSelectSnacks:
		body = m.snackList.View() + "\n" + hint(snackSummary(&m.snacks))
	case stateEnterName:
		body = "Welcome to the Movie Booking System!\nPlease enter your name:\n\n" + m.input.View()
	case stateSelectMovie:
		body = m.movieList.View()
	case stateSelectShowTime:
		body = m.showTimeList.View()
	case stateEnterSeat:
		body = fmt.Sprintf("Available Seats for %s:\n\n%s\n\n%s", m.movie.Title, renderSeatGrid(), m.input.View())
	case stateEnterTickets:
		body = fmt.Sprintf("Seat %d selected.\nHow many tickets?\n\n%s", m.seat, m.input.View())
	case stateBooked:
		body = m.receiptView() + "\n\n" + m.actionList.View()
	case stateEnterFeedback:
		body = m.receiptView() + "\n\n" + m.input.View()
	case stateDone:
		return Summary(m)
	}
	if m.status != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		if m.statusErr {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		}
		body += "\n\n" + style.Render(m.status)
	}
	return header + "\n\n" + body
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Movie Booking")
	sub := []string{}
	if m.user != nil && m.user.Name != "" {
		sub = append(sub, fmt.Sprintf("User: %s", m.user.Name))
	}
	if m.member {
		sub = append(sub, "Member")
	}
	if m.movie.Title != "" && m.state > stateSelectMovie {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	}
	if m.showTime != "" && m.state > stateSelectShowTime {
		sub = append(sub, fmt.Sprintf("Show: %s", m.showTime))
	}
	if !m.snacks.Empty() {
		sub = append(sub, fmt.Sprintf("Snacks: %d", m.snacks.Len()))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back • enter select"
	switch m.state {
	case stateSelectSnacks:
		hints = "ctrl+c quit • enter add snack • choose Done to continue"
	case stateSelectMovie:
		hints = "ctrl+c quit • esc back • type to filter • enter select"
	case stateEnterName, stateEnterSeat, stateEnterTickets, stateEnterFeedback:
		hints = "ctrl+c quit • esc back • enter confirm"
	case stateBooked:
		hints = "ctrl+c quit • enter choose option"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) receiptView() string {
	if m.receipt == nil {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2)
	body := receiptLines(*m.receipt)
	if booking := m.user.Booking(); booking != nil && booking.Canceled() {
		body += lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("CANCELED")
	}
	return box.Render(strings.TrimRight(body, "\n"))
}

func receiptLines(r service.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking Details\n")
	fmt.Fprintf(&b, "User: %s\n", r.UserName)
	fmt.Fprintf(&b, "Booking Ref: %s\n", r.BookingID)
	fmt.Fprintf(&b, "Movie: %s\n", r.MovieTitle)
	fmt.Fprintf(&b, "Show Time: %s\n", r.ShowTime)
	fmt.Fprintf(&b, "Seat Number: %d\n", r.Seat)
	fmt.Fprintf(&b, "Number of Tickets: %d\n", r.Tickets)
	fmt.Fprintf(&b, "Total Payment: %s\n", service.FormatAmount(r.Payment))
	if r.SpecialDay {
		fmt.Fprintf(&b, "Special day price: %s\n", service.FormatAmount(r.DiscountedPayment))
	}
	return b.String()
}

func snackSummary(q *model.SnackQueue) string {
	if q.Empty() {
		return "No choices made yet."
	}
	return "Your choices: " + strings.Join(q.Items(), ", ")
}

func parseNumber(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}
