package movie

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inception() Movie {
	return Movie{
		Title:       "Inception",
		Description: "A thief...",
		ImgURL:      "https://example.com/a.jpg",
		ImdbURL:     "https://www.imdb.com/title/tt1375666",
		ImdbID:      "tt1375666",
	}
}

func TestSpecs(t *testing.T) {
	specs := Specs()
	require.Len(t, specs, 5)

	var names, labels []string
	for _, s := range specs {
		names = append(names, s.Name)
		labels = append(labels, s.Label)
		assert.True(t, s.Required, "field %s", s.Name)
		hasRule := s.Name == FieldImgURL || s.Name == FieldImdbURL
		assert.Equal(t, hasRule, s.Rule != nil, "field %s", s.Name)
	}
	assert.Equal(t, []string{"title", "description", "imgUrl", "imdbUrl", "imdbId"}, names)
	assert.Equal(t, []string{"Title", "Description", "Image URL", "Imdb URL", "Imdb ID"}, labels)
}

func TestRecordRoundTrip(t *testing.T) {
	m := inception()
	if diff := cmp.Diff(m, FromRecord(m.Record())); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(inception()))

	bad := inception()
	bad.Title = "  "
	bad.ImgURL = "not a url"
	bad.ImdbID = ""

	err := Validate(bad)
	require.Error(t, err)
	var invalid *InvalidError
	require.True(t, errors.As(err, &invalid))
	want := []FieldError{
		{Field: "title", Rule: "notblank"},
		{Field: "imgUrl", Rule: "permissive_url"},
		{Field: "imdbId", Rule: "notblank"},
	}
	if diff := cmp.Diff(want, invalid.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, err.Error(), "imgUrl (permissive_url)")
}

func TestNewFormSubmitsMovie(t *testing.T) {
	var got []Movie
	f, err := NewForm(func(_ context.Context, m Movie) error {
		got = append(got, m)
		return nil
	})
	require.NoError(t, err)

	for name, v := range inception().Record() {
		require.NoError(t, f.OnFieldChange(name, v))
	}
	require.NoError(t, f.Submit(context.Background()))
	require.Len(t, got, 1)
	if diff := cmp.Diff(inception(), got[0]); diff != "" {
		t.Fatalf("submitted movie mismatch (-want +got):\n%s", diff)
	}
}
