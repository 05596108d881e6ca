package model

import "time"

// Content represents one saved link in a user's collection.
//
// Items are created and deleted but never edited in place — there is no
// update operation anywhere in the API, so no UpdatedAt field either.
//
// Title and Description are what the user typed (or accepted). The Scraped*
// fields hold whatever the metadata scraper found at save time; they are
// kept separately so the user's own text always wins for display and the
// scraped values stay available to the client as a fallback.
type Content struct {
	ID          string    `json:"id"          db:"id"`
	UserID      string    `json:"userId"      db:"user_id"`
	Link        string    `json:"link"        db:"link"`
	Type        string    `json:"type"        db:"type"` // free-form: "youtube", "twitter", "article", ...
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Tags        []string  `json:"tags"        db:"tags"`

	ScrapedTitle       string `json:"scrapedTitle,omitempty"       db:"scraped_title"`
	ScrapedDescription string `json:"scrapedDescription,omitempty" db:"scraped_description"`
	ScrapedImage       string `json:"scrapedImage,omitempty"       db:"scraped_image"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
