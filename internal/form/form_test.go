package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieSpecs() []Spec {
	return []Spec{
		{Name: "title", Label: "Title", Required: true},
		{Name: "description", Label: "Description", Required: true},
		{Name: "imgUrl", Label: "Image URL", Required: true, Rule: URL},
		{Name: "imdbUrl", Label: "Imdb URL", Required: true, Rule: URL},
		{Name: "imdbId", Label: "Imdb ID", Required: true},
	}
}

var inception = Record{
	"title":       "Inception",
	"description": "A thief...",
	"imgUrl":      "https://example.com/a.jpg",
	"imdbUrl":     "https://www.imdb.com/title/tt1375666",
	"imdbId":      "tt1375666",
}

type submitted struct {
	records []Record
	err     error
}

func (s *submitted) submit(_ context.Context, r Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, r)
	return nil
}

func newTestForm(t *testing.T, opts ...Option) (*Form, *submitted) {
	t.Helper()
	sub := &submitted{}
	f, err := New(movieSpecs(), sub.submit, opts...)
	require.NoError(t, err)
	return f, sub
}

// fill types every value of r the way a user would: focus, edit, blur.
func fill(t *testing.T, f *Form, r Record) {
	t.Helper()
	for _, spec := range movieSpecs() {
		require.NoError(t, f.Focus(spec.Name))
		require.NoError(t, f.SetValue(spec.Name, r[spec.Name]))
		require.NoError(t, f.Blur(spec.Name))
	}
}

func TestNewInitialState(t *testing.T) {
	f, _ := newTestForm(t)

	assert.Equal(t, 0, f.Generation())
	assert.Equal(t, Record{"title": "", "description": "", "imgUrl": "", "imdbUrl": "", "imdbId": ""}, f.Values())
	assert.Equal(t, map[string]bool{"title": false, "description": false, "imgUrl": false, "imdbUrl": false, "imdbId": false}, f.Validity())

	names := make([]string, 0, 5)
	for _, fld := range f.Fields() {
		names = append(names, fld.Name())
		assert.False(t, fld.Touched())
	}
	assert.Equal(t, []string{"title", "description", "imgUrl", "imdbUrl", "imdbId"}, names)
}

func TestNewRejectsBadSpecs(t *testing.T) {
	noop := func(context.Context, Record) error { return nil }

	_, err := New(nil, noop)
	assert.Error(t, err)

	_, err = New([]Spec{{Name: "a"}}, nil)
	assert.Error(t, err)

	_, err = New([]Spec{{Name: " "}}, noop)
	assert.Error(t, err)

	_, err = New([]Spec{{Name: "a"}, {Name: "a"}}, noop)
	assert.ErrorContains(t, err, `duplicate field "a"`)
}

func TestFieldIDsAreUniqueWithinForm(t *testing.T) {
	f, _ := newTestForm(t)
	seen := map[string]bool{}
	for _, fld := range f.Fields() {
		assert.True(t, strings.HasPrefix(fld.ID(), fld.Name()+"-"), "id %q", fld.ID())
		assert.False(t, seen[fld.ID()])
		seen[fld.ID()] = true
	}

	fill(t, f, inception)
	require.NoError(t, f.Submit(context.Background()))
	for _, fld := range f.Fields() {
		assert.False(t, seen[fld.ID()], "id %q reused after reset", fld.ID())
	}
}

func TestScenarioAllEmptyDisablesSubmit(t *testing.T) {
	f, sub := newTestForm(t)

	assert.False(t, f.SubmitEnabled())
	err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitDisabled)
	assert.Empty(t, sub.records)
	assert.Equal(t, 0, f.Generation())
}

func TestScenarioValidRecordSubmitsAndResets(t *testing.T) {
	f, sub := newTestForm(t)
	fill(t, f, inception)

	require.True(t, f.SubmitEnabled())
	require.NoError(t, f.Submit(context.Background()))

	require.Len(t, sub.records, 1)
	assert.Equal(t, inception, sub.records[0])

	assert.Equal(t, 1, f.Generation())
	assert.False(t, f.SubmitEnabled())
	for _, fld := range f.Fields() {
		assert.Equal(t, "", f.Value(fld.Name()))
		assert.Equal(t, "", fld.Value())
		assert.False(t, fld.Touched(), "field %s", fld.Name())
		assert.False(t, fld.Errors().Any(), "field %s", fld.Name())
	}
	for name, invalid := range f.Validity() {
		assert.False(t, invalid, "field %s", name)
	}

	// A second submit on the reset form is refused.
	assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmitDisabled)
	assert.Len(t, sub.records, 1)
}

func TestScenarioBadImageURLBlocksSubmit(t *testing.T) {
	f, sub := newTestForm(t)
	r := Record{}
	for k, v := range inception {
		r[k] = v
	}
	r["imgUrl"] = "not a url"
	fill(t, f, r)

	img, ok := f.Field("imgUrl")
	require.True(t, ok)
	assert.Equal(t, []string{"Image URL is not valid"}, img.Messages())
	for _, fld := range f.Fields() {
		if fld.Name() == "imgUrl" {
			continue
		}
		assert.Empty(t, fld.Messages(), "field %s", fld.Name())
	}
	assert.Equal(t, map[string]bool{"title": false, "description": false, "imgUrl": true, "imdbUrl": false, "imdbId": false}, f.Validity())
	assert.False(t, f.SubmitEnabled())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmitDisabled)
	assert.Empty(t, sub.records)
}

func TestRefocusClearsFieldEntry(t *testing.T) {
	f, _ := newTestForm(t)
	require.NoError(t, f.Focus("title"))
	require.NoError(t, f.Blur("title"))
	assert.True(t, f.Validity()["title"])

	require.NoError(t, f.Focus("title"))
	assert.False(t, f.Validity()["title"])
	title, _ := f.Field("title")
	assert.Empty(t, title.Messages())

	// Blurring while still empty shows the error again.
	require.NoError(t, f.Blur("title"))
	assert.True(t, f.Validity()["title"])
	assert.Equal(t, []string{"Title is required"}, title.Messages())
}

func TestEachFieldWritesOnlyItsOwnEntry(t *testing.T) {
	f, _ := newTestForm(t)
	require.NoError(t, f.Blur("title"))
	require.NoError(t, f.Blur("imdbId"))
	require.NoError(t, f.Focus("title"))

	assert.False(t, f.Validity()["title"])
	assert.True(t, f.Validity()["imdbId"])
}

func TestSubmitGateRequiresNonBlankValues(t *testing.T) {
	f, _ := newTestForm(t)
	for name, v := range inception {
		require.NoError(t, f.OnFieldChange(name, v))
	}
	assert.True(t, f.SubmitEnabled(), "untouched but filled fields open the gate")

	require.NoError(t, f.OnFieldChange("description", "   "))
	assert.False(t, f.SubmitEnabled())

	require.NoError(t, f.OnFieldChange("description", "A thief..."))
	assert.True(t, f.SubmitEnabled())
}

func TestOnFieldChangeUpdatesFieldValue(t *testing.T) {
	f, _ := newTestForm(t)
	require.NoError(t, f.OnFieldChange("title", "Inception"))

	title, _ := f.Field("title")
	assert.Equal(t, "Inception", title.Value())
	assert.Equal(t, "Inception", f.Value("title"))
}

func TestRepeatedChangesDoNotRenotify(t *testing.T) {
	var events []string
	lgr := funcr.New(func(_, args string) {
		if strings.Contains(args, "field validity changed") {
			events = append(events, args)
		}
	}, funcr.Options{Verbosity: 1})
	f, _ := newTestForm(t, WithLogger(lgr))

	require.NoError(t, f.Focus("imdbUrl"))
	require.NoError(t, f.Blur("imdbUrl"))
	require.Len(t, events, 1)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.OnFieldChange("imdbUrl", "nope nope"))
	}
	assert.Len(t, events, 1, "entry stays true; repeated values change nothing")
	assert.True(t, f.Validity()["imdbUrl"])
}

func TestUnknownField(t *testing.T) {
	f, _ := newTestForm(t)
	assert.ErrorIs(t, f.Focus("year"), ErrUnknownField)
	assert.ErrorIs(t, f.Blur("year"), ErrUnknownField)
	assert.ErrorIs(t, f.SetValue("year", "2010"), ErrUnknownField)
	assert.ErrorIs(t, f.OnFieldChange("year", "2010"), ErrUnknownField)
	assert.EqualError(t, f.Blur("year"), `unknown field: "year"`)
	_, ok := f.Field("year")
	assert.False(t, ok)
	assert.NotContains(t, f.Values(), "year")
	assert.NotContains(t, f.Validity(), "year")
}

func TestSubmitErrorKeepsState(t *testing.T) {
	f, sub := newTestForm(t)
	sub.err = errors.New("catalog full")
	fill(t, f, inception)

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sub.err)
	assert.Equal(t, 0, f.Generation())
	assert.Equal(t, inception, f.Values())
	assert.True(t, f.SubmitEnabled())
}

func TestValuesReturnsCopy(t *testing.T) {
	f, _ := newTestForm(t)
	v := f.Values()
	v["title"] = "changed"
	assert.Equal(t, "", f.Value("title"))

	validity := f.Validity()
	validity["title"] = true
	assert.False(t, f.Validity()["title"])
}
