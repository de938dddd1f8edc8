// Package movie defines the record composed through the movie form and the
// invariant every submitted record satisfies.
package movie

import (
	"context"

	"github.com/oakwood-commons/reel/internal/form"
)

// Field names, in display order.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImgURL      = "imgUrl"
	FieldImdbURL     = "imdbUrl"
	FieldImdbID      = "imdbId"
)

// Movie is a catalog record. Once submitted every field is non-blank and the
// two URL fields satisfy the permissive URL rule.
type Movie struct {
	Title       string `yaml:"title" json:"title" toml:"title" validate:"notblank"`
	Description string `yaml:"description" json:"description" toml:"description" validate:"notblank"`
	ImgURL      string `yaml:"imgUrl" json:"imgUrl" toml:"imgUrl" validate:"notblank,permissive_url"`
	ImdbURL     string `yaml:"imdbUrl" json:"imdbUrl" toml:"imdbUrl" validate:"notblank,permissive_url"`
	ImdbID      string `yaml:"imdbId" json:"imdbId" toml:"imdbId" validate:"notblank"`
}

// Specs declares the movie form fields. All are required; the image and IMDB
// URLs carry the URL format rule.
func Specs() []form.Spec {
	return []form.Spec{
		{Name: FieldTitle, Label: "Title", Required: true},
		{Name: FieldDescription, Label: "Description", Required: true},
		{Name: FieldImgURL, Label: "Image URL", Required: true, Rule: form.URL},
		{Name: FieldImdbURL, Label: "Imdb URL", Required: true, Rule: form.URL},
		{Name: FieldImdbID, Label: "Imdb ID", Required: true},
	}
}

// FromRecord builds a Movie from submitted form values.
func FromRecord(r form.Record) Movie {
	return Movie{
		Title:       r[FieldTitle],
		Description: r[FieldDescription],
		ImgURL:      r[FieldImgURL],
		ImdbURL:     r[FieldImdbURL],
		ImdbID:      r[FieldImdbID],
	}
}

// Record returns the movie as form values.
func (m Movie) Record() form.Record {
	return form.Record{
		FieldTitle:       m.Title,
		FieldDescription: m.Description,
		FieldImgURL:      m.ImgURL,
		FieldImdbURL:     m.ImdbURL,
		FieldImdbID:      m.ImdbID,
	}
}

// NewForm creates a movie form whose submissions are handed to add.
func NewForm(add func(ctx context.Context, m Movie) error, opts ...form.Option) (*form.Form, error) {
	return form.New(Specs(), func(ctx context.Context, r form.Record) error {
		return add(ctx, FromRecord(r))
	}, opts...)
}
