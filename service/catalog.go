package service

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"cinema-booking-cli/model"
)

// ErrInvalidMovieChoice is returned when a menu index does not address a movie.
var ErrInvalidMovieChoice = errors.New("invalid movie choice")

// NotFoundError is returned when show times are requested for an unknown title.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie not found: %q", e.Title)
}

// IsNotFound reports whether err is a missing catalog title or a 404 from a
// remote catalog source.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// Catalog is the fixed set of bookable movies and their show times.
type Catalog struct {
	movies    []model.Movie
	showTimes map[string][]string
}

func NewCatalog(movies []model.Movie, showTimes map[string][]string) *Catalog {
	c := &Catalog{
		movies:    make([]model.Movie, len(movies)),
		showTimes: make(map[string][]string, len(showTimes)),
	}
	copy(c.movies, movies)
	for title, times := range showTimes {
		c.showTimes[title] = append([]string(nil), times...)
	}
	return c
}

// DefaultCatalog returns the five movies the booking desk ships with.
func DefaultCatalog() *Catalog {
	morning := []string{"10:00 AM", "02:00 PM", "06:00 PM"}
	late := []string{"11:30 AM", "03:30 PM", "07:30 PM"}

	movies := []model.Movie{
		{Title: "Barbie", DurationMinutes: 120},
		{Title: "Oppenheimer", DurationMinutes: 110},
		{Title: "Animal", DurationMinutes: 120},
		{Title: "Spider-Man: Across the Spider-Verse", DurationMinutes: 120},
		{Title: "Home For Rent", DurationMinutes: 120},
	}
	return NewCatalog(movies, map[string][]string{
		"Barbie":                              morning,
		"Oppenheimer":                         late,
		"Animal":                              morning,
		"Spider-Man: Across the Spider-Verse": late,
		"Home For Rent":                       morning,
	})
}

// CatalogFromDocument builds a catalog from a decoded catalog document. The
// document is expected to be validated already.
func CatalogFromDocument(doc model.CatalogDocument) *Catalog {
	movies := make([]model.Movie, 0, len(doc.Movies))
	showTimes := make(map[string][]string, len(doc.Movies))
	for _, entry := range doc.Movies {
		movies = append(movies, model.Movie{Title: entry.Title, DurationMinutes: entry.DurationMinutes})
		showTimes[entry.Title] = entry.ShowTimes
	}
	return NewCatalog(movies, showTimes)
}

// Document converts the catalog back to its document form, movies in listing order.
func (c *Catalog) Document() model.CatalogDocument {
	sorted := c.ListSorted()
	doc := model.CatalogDocument{Movies: make([]model.CatalogEntry, 0, len(sorted))}
	for _, movie := range sorted {
		doc.Movies = append(doc.Movies, model.CatalogEntry{
			Title:           movie.Title,
			DurationMinutes: movie.DurationMinutes,
			ShowTimes:       append([]string(nil), c.showTimes[movie.Title]...),
		})
	}
	return doc
}

// ListSorted returns the movies ordered by title using plain string ordering.
func (c *Catalog) ListSorted() []model.Movie {
	out := make([]model.Movie, len(c.movies))
	copy(out, c.movies)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}

func (c *Catalog) Len() int {
	return len(c.movies)
}

// MovieAt resolves a 1-based menu choice against the sorted listing.
func (c *Catalog) MovieAt(choice int) (model.Movie, error) {
	if choice < 1 || choice > len(c.movies) {
		return model.Movie{}, ErrInvalidMovieChoice
	}
	return c.ListSorted()[choice-1], nil
}

func (c *Catalog) ShowTimesFor(title string) ([]string, error) {
	times, ok := c.showTimes[title]
	if !ok {
		return nil, &NotFoundError{Title: title}
	}
	return append([]string(nil), times...), nil
}
