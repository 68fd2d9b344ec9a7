// Package portfolio defines the records shown on the portfolio site.
//
// A [Project] is the card type of the projects carousel. It satisfies
// carousel.Card through [Project.CardID] and renders itself through
// [Project.Component], so the carousel and the HTML sink never need to know
// what a project looks like.
package portfolio

import (
	"strings"

	"github.com/dzikrimr/portfolio-web/pkg/errors"
)

const (
	// PlaceholderImage is shown for projects without images.
	PlaceholderImage = "/static/placeholder.svg"

	// CardDescriptionLimit is the number of characters of a description
	// shown on a card before it is truncated.
	CardDescriptionLimit = 100

	// CardTagLimit is the number of tags shown on a card. The detail view
	// shows all of them.
	CardTagLimit = 3
)

// Project is one entry of the projects section.
type Project struct {
	ID          string   `json:"id" toml:"id" bson:"_id"`
	Title       string   `json:"title" toml:"title" bson:"title"`
	Description string   `json:"description" toml:"description" bson:"description"`
	Images      []string `json:"images,omitempty" toml:"images" bson:"images,omitempty"`
	Tags        []string `json:"tags,omitempty" toml:"tags" bson:"tags,omitempty"`
	Link        string   `json:"link,omitempty" toml:"link" bson:"link,omitempty"`
	Position    int      `json:"position" toml:"position" bson:"position"`
}

// CardID implements carousel.Card.
func (p Project) CardID() string { return p.ID }

// PrimaryImage returns the first image, or PlaceholderImage.
func (p Project) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return PlaceholderImage
}

// HasGallery reports whether the project has more than one image.
func (p Project) HasGallery() bool { return len(p.Images) > 1 }

// CardTags returns the tags shown on the card.
func (p Project) CardTags() []string {
	if len(p.Tags) > CardTagLimit {
		return p.Tags[:CardTagLimit]
	}
	return p.Tags
}

// CardDescription returns the description truncated for the card.
func (p Project) CardDescription() string {
	return Truncate(p.Description, CardDescriptionLimit)
}

// Validate checks the fields every source must provide.
func (p Project) Validate() error {
	if err := errors.ValidateProjectID(p.ID); err != nil {
		return err
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "project %s: title is required", p.ID)
	}
	return nil
}

// Truncate shortens s to max runes and appends "..." when it was cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max < 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// Find returns the project with the given ID and its index.
func Find(projects []Project, id string) (Project, int, bool) {
	for i, p := range projects {
		if p.ID == id {
			return p, i, true
		}
	}
	return Project{}, -1, false
}
