package model

import "github.com/google/uuid"

// Booking is a single reservation. Seat and ticket count are taken as given.
type Booking struct {
	ID       uuid.UUID
	Movie    Movie
	ShowTime string
	Seat     int
	Tickets  int
	canceled bool
}

func NewBooking(movie Movie, showTime string, seat int, tickets int) *Booking {
	return &Booking{
		ID:       uuid.New(),
		Movie:    movie,
		ShowTime: showTime,
		Seat:     seat,
		Tickets:  tickets,
	}
}

// Cancel marks the booking canceled and reports whether the call changed it.
func (b *Booking) Cancel() bool {
	if b.canceled {
		return false
	}
	b.canceled = true
	return true
}

func (b *Booking) Canceled() bool {
	return b.canceled
}
