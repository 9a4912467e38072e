package model

import "errors"

var ErrNothingToCancel = errors.New("no active booking to cancel")

// Cancellation describes a booking that was just canceled.
type Cancellation struct {
	MovieTitle string
	ShowTime   string
	Seat       int
}

// User is the single session owner. It holds at most one booking at a time.
type User struct {
	Name     string
	IsMember bool

	booking  *Booking
	feedback []Feedback
}

func NewUser(name string, isMember bool) *User {
	return &User{Name: name, IsMember: isMember}
}

// BookTicket replaces any previous booking with a new one.
func (u *User) BookTicket(movie Movie, showTime string, seat int, tickets int) *Booking {
	u.booking = NewBooking(movie, showTime, seat, tickets)
	return u.booking
}

// Booking returns the current booking, or nil when none was made.
func (u *User) Booking() *Booking {
	return u.booking
}

func (u *User) CancelTicket() (Cancellation, error) {
	if u.booking == nil || !u.booking.Cancel() {
		return Cancellation{}, ErrNothingToCancel
	}
	return Cancellation{
		MovieTitle: u.booking.Movie.Title,
		ShowTime:   u.booking.ShowTime,
		Seat:       u.booking.Seat,
	}, nil
}

func (u *User) GiveFeedback(movie Movie, text string) Feedback {
	fb := Feedback{MovieTitle: movie.Title, Text: text}
	u.feedback = append(u.feedback, fb)
	return fb
}

func (u *User) Feedback() []Feedback {
	out := make([]Feedback, len(u.feedback))
	copy(out, u.feedback)
	return out
}
