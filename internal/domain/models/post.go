package model

import "time"

// DateLayout renders timestamps the way browsers print Date.toISOString().
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
