package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"cinema-booking-cli/model"
)

type snackItem struct {
	name string
	done bool
}

func (s snackItem) Title() string {
	if s.done {
		return "Done"
	}
	return s.name
}

func (s snackItem) Description() string {
	if s.done {
		return "Finish and continue to booking"
	}
	return "Add to your order"
}

func (s snackItem) FilterValue() string {
	return strings.ToLower(s.Title())
}

type movieItem struct {
	movie model.Movie
}

func (m movieItem) Title() string {
	return m.movie.Title
}

func (m movieItem) Description() string {
	return fmt.Sprintf("%d min", m.movie.DurationMinutes)
}

func (m movieItem) FilterValue() string {
	return strings.ToLower(m.movie.Title)
}

type showTimeItem struct {
	label string
}

func (s showTimeItem) Title() string       { return s.label }
func (s showTimeItem) Description() string { return "" }
func (s showTimeItem) FilterValue() string { return strings.ToLower(s.label) }

type bookedAction int

const (
	actionCancel bookedAction = iota
	actionFeedback
	actionExit
)

type actionItem struct {
	action bookedAction
}

func (a actionItem) Title() string {
	switch a.action {
	case actionCancel:
		return "Cancel Ticket"
	case actionFeedback:
		return "Leave Feedback"
	default:
		return "Exit"
	}
}

func (a actionItem) Description() string {
	switch a.action {
	case actionCancel:
		return "Cancel the current booking"
	case actionFeedback:
		return "Tell us what you thought of the movie"
	default:
		return "Finish the session"
	}
}

func (a actionItem) FilterValue() string {
	return strings.ToLower(a.Title())
}

func buildSnackItems() []list.Item {
	items := make([]list.Item, 0, len(model.SnackMenu)+1)
	for _, name := range model.SnackMenu {
		items = append(items, snackItem{name: name})
	}
	return append(items, snackItem{done: true})
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

func buildShowTimeItems(showTimes []string) []list.Item {
	items := make([]list.Item, 0, len(showTimes))
	for _, label := range showTimes {
		items = append(items, showTimeItem{label: label})
	}
	return items
}

func buildActionItems() []list.Item {
	return []list.Item{
		actionItem{action: actionCancel},
		actionItem{action: actionFeedback},
		actionItem{action: actionExit},
	}
}
