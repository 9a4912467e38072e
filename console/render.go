package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
)

const (
	seatRows    = 10
	seatColumns = 10
)

var seatColumnLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// renderSeatGrid prints the static 10x10 auditorium layout. Rows are labeled
// 10 down to 1, seats are numbered 1..100 left to right from the top row.
func renderSeatGrid(out io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(out)

	for row := 0; row < seatRows; row++ {
		cells := table.Row{seatRows - row}
		for col := 0; col < seatColumns; col++ {
			cells = append(cells, row*seatColumns+col+1)
		}
		t.AppendRow(cells)
	}

	footer := table.Row{""}
	for _, label := range seatColumnLabels {
		footer = append(footer, label)
	}
	t.AppendFooter(footer)
	t.Render()
}

func renderSnacks(out io.Writer, snacks *model.SnackQueue) {
	if snacks.Empty() {
		fmt.Fprintln(out, "No choices made yet.")
		return
	}
	fmt.Fprintln(out, "User Choices:")
	for _, item := range snacks.Items() {
		fmt.Fprintln(out, item)
	}
}

func renderBookingBanner(out io.Writer, receipt service.Receipt) {
	stars := strings.Repeat("*", 50)
	fmt.Fprintln(out)
	fmt.Fprintln(out, stars)
	fmt.Fprintf(out, "Ticket booked for %s at %s, Seat: %d, Number of Tickets: %d\n",
		receipt.MovieTitle, receipt.ShowTime, receipt.Seat, receipt.Tickets)
	if receipt.SpecialDay {
		fmt.Fprintln(out, "Congratulations! An additional 10% discount has been applied for you today.")
		fmt.Fprintf(out, "Total Payment after discount: %s\n", service.FormatAmount(receipt.DiscountedPayment))
	}
	fmt.Fprintln(out, stars)
	fmt.Fprintln(out)
}

func renderReceipt(out io.Writer, receipt service.Receipt) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Booking Details")
	t.AppendRows([]table.Row{
		{"User", receipt.UserName},
		{"Booking Ref", receipt.BookingID.String()},
		{"Movie", receipt.MovieTitle},
		{"Show Time", receipt.ShowTime},
		{"Seat Number", receipt.Seat},
		{"Number of Tickets", receipt.Tickets},
		{"Total Payment", service.FormatAmount(receipt.Payment)},
	})
	t.Render()
}

// RenderCatalog prints the catalog as a table of movies and show times.
func RenderCatalog(out io.Writer, catalog *service.Catalog) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "Movie", "Duration", "Show Time"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true, WidthMax: 40},
		{Number: 3, AutoMerge: true},
	})
	t.Style().Options.SeparateRows = true

	for i, movie := range catalog.ListSorted() {
		showTimes, err := catalog.ShowTimesFor(movie.Title)
		if err != nil || len(showTimes) == 0 {
			showTimes = []string{"-"}
		}
		var rows []table.Row
		for _, showTime := range showTimes {
			rows = append(rows, table.Row{i + 1, movie.Title, fmt.Sprintf("%d min", movie.DurationMinutes), showTime})
		}
		t.AppendRows(rows, rowConfigAutoMerge)
	}
	t.Render()
}
