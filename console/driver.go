package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

// ErrInputClosed is returned when input ends before the session is finished.
var ErrInputClosed = errors.New("input closed before the session finished")

const (
	menuCancel = 1
	menuExit   = 2
)

type Options struct {
	Catalog  *service.Catalog
	Pricing  service.Pricing
	IsMember bool
	Logger   *slog.Logger
}

// Driver runs one booking session over a line-oriented reader and writer.
type Driver struct {
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	catalog *service.Catalog
	pricing service.Pricing
	member  bool
}

func New(in io.Reader, out io.Writer, opts Options) *Driver {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = service.DefaultCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Driver{
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		catalog: catalog,
		pricing: opts.Pricing,
		member:  opts.IsMember,
	}
}

// Run drives the whole session. It returns service.ErrInvalidMovieChoice when
// the movie menu choice is out of range; no booking is made in that case.
func (d *Driver) Run(ctx context.Context) error {
	movies := d.catalog.ListSorted()
	d.printMovies("Available movies in sorted order", movies)

	snacks, err := d.collectSnacks()
	if err != nil {
		return err
	}
	d.logger.Debug("snack selection finished", "items", snacks.Len())

	fmt.Fprintln(d.out, "Welcome to the Movie Booking System!")
	fmt.Fprint(d.out, "Please enter your name: ")
	name, err := d.readLine()
	if err != nil {
		return err
	}
	user := model.NewUser(strings.TrimSpace(name), d.member)

	d.printMovies("Available movies:", movies)
	fmt.Fprint(d.out, "Enter the number of the movie you want to watch: ")
	choice, ok, err := d.readChoice()
	if err != nil {
		return err
	}
	if !ok {
		choice = 0
	}
	movie, err := d.catalog.MovieAt(choice)
	if err != nil {
		fmt.Fprintln(d.out, "Invalid movie choice.")
		d.logger.Warn("movie choice out of range", "choice", choice, "movies", d.catalog.Len())
		return err
	}

	showTimes, err := d.catalog.ShowTimesFor(movie.Title)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Available show times for %s:\n", movie.Title)
	index, err := d.selectShowTime(showTimes)
	if err != nil {
		return err
	}
	if index > len(showTimes) {
		return fmt.Errorf("show time %d is not offered for %s", index, movie.Title)
	}
	showTime := showTimes[index-1]

	fmt.Fprintf(d.out, "Available Seats for %s:\n", movie.Title)
	renderSeatGrid(d.out)

	seat, err := d.readNumber("Enter the seat number you want to book: ")
	if err != nil {
		return err
	}
	tickets, err := d.readNumber("Enter the number of tickets you want to buy: ")
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	receipt := service.Checkout(user, d.pricing, service.BookingRequest{
		Movie:    movie,
		ShowTime: showTime,
		Seat:     seat,
		Tickets:  tickets,
	})
	d.logger.Info("booking created",
		"booking_id", receipt.BookingID,
		"movie", receipt.MovieTitle,
		"show_time", receipt.ShowTime,
		"seat", receipt.Seat,
		"tickets", receipt.Tickets,
		"payment", receipt.Payment.StringFixed(2),
	)
	renderBookingBanner(d.out, receipt)
	renderReceipt(d.out, receipt)

	return d.afterBooking(user)
}

func (d *Driver) collectSnacks() (*model.SnackQueue, error) {
	snacks := &model.SnackQueue{}

	fmt.Fprintln(d.out, "Welcome to the Pantry! Please choose from the following items before booking the tickets")
	for i, item := range model.SnackMenu {
		fmt.Fprintf(d.out, "%d. %s\n", i+1, item)
	}

	for {
		fmt.Fprint(d.out, "Enter your choice (1, 2, or 3), or enter 0 to finish: ")
		choice, ok, err := d.readChoice()
		if err != nil {
			return nil, err
		}
		if ok && choice == 0 {
			fmt.Fprintln(d.out, "Thank you for choosing! Here are your selections:")
			renderSnacks(d.out, snacks)
			return snacks, nil
		}
		item, found := model.SnackFor(choice)
		if !ok || !found {
			fmt.Fprintln(d.out, "Invalid choice. Please try again.")
			continue
		}
		snacks.Enqueue(item)
	}
}

func (d *Driver) selectShowTime(options []string) (int, error) {
	fmt.Fprintln(d.out, "Select Show Time:")
	for i, option := range options {
		fmt.Fprintf(d.out, "%d. %s\n", i+1, option)
	}
	fmt.Fprint(d.out, "Enter your choice (1, 2, or 3): ")

	choice, ok, err := d.readChoice()
	if err != nil {
		return 0, err
	}
	if !ok {
		choice = 0
	}
	index, defaulted := service.SelectShowTime(options, choice)
	if defaulted {
		fmt.Fprintln(d.out, "Invalid choice. Defaulting to Show Time 1.")
	}
	return index, nil
}

func (d *Driver) afterBooking(user *model.User) error {
	for {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, "Options:")
		fmt.Fprintln(d.out, "1. Cancel Ticket")
		fmt.Fprintln(d.out, "2. Exit")
		fmt.Fprint(d.out, "Enter your choice: ")

		choice, ok, err := d.readChoice()
		if err != nil {
			return err
		}
		if !ok {
			choice = 0
		}

		switch choice {
		case menuCancel:
			canceled, err := user.CancelTicket()
			if errors.Is(err, model.ErrNothingToCancel) {
				fmt.Fprintln(d.out, "No active booking to cancel.")
				continue
			}
			fmt.Fprintf(d.out, "Booking canceled for %s at %s, Seat: %d\n", canceled.MovieTitle, canceled.ShowTime, canceled.Seat)
			d.logger.Info("booking canceled", "booking_id", user.Booking().ID)
		case menuExit:
			fmt.Fprintln(d.out, "Dear Customer!")
			fmt.Fprintln(d.out, "Your Ticket Has Been Booked")
			fmt.Fprintln(d.out, "Thank you for using the Movie Booking System!")
			return nil
		default:
			fmt.Fprintln(d.out, "Invalid choice. Please try again.")
		}
	}
}

func (d *Driver) printMovies(title string, movies []model.Movie) {
	fmt.Fprintln(d.out, title)
	for i, movie := range movies {
		fmt.Fprintf(d.out, "%d. %s (%d min)\n", i+1, movie.Title, movie.DurationMinutes)
	}
}

func (d *Driver) readLine() (string, error) {
	if !d.in.Scan() {
		if err := d.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return d.in.Text(), nil
}

// readChoice reads the next non-blank line and parses its first field.
// ok is false when that field is not an integer.
func (d *Driver) readChoice() (choice int, ok bool, err error) {
	for {
		line, err := d.readLine()
		if err != nil {
			return 0, false, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, false, nil
		}
		return n, true, nil
	}
}

// readNumber prompts until an integer is entered. The value is not range checked.
func (d *Driver) readNumber(prompt string) (int, error) {
	for {
		fmt.Fprint(d.out, prompt)
		n, ok, err := d.readChoice()
		if err != nil {
			return 0, err
		}
		if ok {
			return n, nil
		}
		fmt.Fprintln(d.out, "Please enter a whole number.")
	}
}
