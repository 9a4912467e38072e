package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cinema-booking-cli/model"
)

type BookingRequest struct {
	Movie    model.Movie
	ShowTime string
	Seat     int
	Tickets  int
}

// Receipt is what the booking desk prints after a checkout.
type Receipt struct {
	BookingID  uuid.UUID
	UserName   string
	MovieTitle string
	ShowTime   string
	Seat       int
	Tickets    int

	// Payment is the amount charged: base price with the member discount.
	Payment decimal.Decimal
	// DiscountedPayment is the special-day figure. Display only.
	DiscountedPayment decimal.Decimal
	SpecialDay        bool
}

// Checkout books the request on the user, replacing any earlier booking, and
// prices it.
func Checkout(user *model.User, pricing Pricing, req BookingRequest) Receipt {
	booking := user.BookTicket(req.Movie, req.ShowTime, req.Seat, req.Tickets)
	payment := CalculatePayment(booking.Tickets, user.IsMember)

	return Receipt{
		BookingID:         booking.ID,
		UserName:          user.Name,
		MovieTitle:        booking.Movie.Title,
		ShowTime:          booking.ShowTime,
		Seat:              booking.Seat,
		Tickets:           booking.Tickets,
		Payment:           payment,
		DiscountedPayment: SpecialDayPrice(payment, pricing.IsSpecialDay),
		SpecialDay:        pricing.IsSpecialDay,
	}
}
