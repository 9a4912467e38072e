package model

type Movie struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
}

type Feedback struct {
	MovieTitle string `json:"movie_title"`
	Text       string `json:"text"`
}
