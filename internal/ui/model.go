package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/reel/internal/catalog"
	"github.com/oakwood-commons/reel/internal/form"
	"github.com/oakwood-commons/reel/internal/limiter"
	"github.com/oakwood-commons/reel/internal/movie"
	"github.com/oakwood-commons/reel/pkg/logger"
)

const (
	defaultInputWidth = 48
	defaultCardWidth  = 44
	inputCharLimit    = 512
)

// Options configures the form model.
type Options struct {
	Heading     string
	SubmitLabel string
	InputWidth  int
	CardWidth   int
	MaxCards    int // most recent movies shown; 0 shows all
	Theme       Theme
	NoColor     bool
}

// Model is the Bubble Tea model for the movie form. It turns key presses
// into focus, blur and change events on the form and renders the form next
// to the catalog.
type Model struct {
	ctx     context.Context
	log     logr.Logger
	form    *form.Form
	catalog *catalog.Catalog
	opts    Options
	styles  styles

	inputs     []textinput.Model
	names      []string
	focus      int // index into inputs; len(inputs) is the submit button
	generation int

	width     int
	height    int
	status    string
	statusErr bool
	quitting  bool
}

// NewModel creates the model. The form's submit function is expected to
// store records in cat; the model only reads cat for display.
func NewModel(ctx context.Context, f *form.Form, cat *catalog.Catalog, opts Options) *Model {
	if strings.TrimSpace(opts.Heading) == "" {
		opts.Heading = "Add a movie"
	}
	if strings.TrimSpace(opts.SubmitLabel) == "" {
		opts.SubmitLabel = "Add"
	}
	if opts.InputWidth <= 0 {
		opts.InputWidth = defaultInputWidth
	}
	if opts.CardWidth <= 0 {
		opts.CardWidth = defaultCardWidth
	}
	if opts.MaxCards < 0 {
		opts.MaxCards = 0
	}
	m := &Model{
		ctx:     ctx,
		log:     *logger.FromContext(ctx),
		form:    f,
		catalog: cat,
		opts:    opts,
		styles:  newStyles(opts.Theme, opts.NoColor),
	}
	m.mount()
	return m
}

// mount creates one input per field for the current form generation and
// gives the first field focus.
func (m *Model) mount() {
	fields := m.form.Fields()
	m.inputs = make([]textinput.Model, 0, len(fields))
	m.names = make([]string, 0, len(fields))
	for _, fld := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fld.Placeholder()
		ti.CharLimit = inputCharLimit
		ti.SetWidth(m.opts.InputWidth)
		ti.SetValue(fld.Value())
		m.inputs = append(m.inputs, ti)
		m.names = append(m.names, fld.Name())
	}
	m.generation = m.form.Generation()
	m.focus = len(m.inputs)
	m.setFocus(0)
}

// Form returns the underlying form.
func (m *Model) Form() *form.Form { return m.form }

// FocusedField returns the name of the focused field, or "" when the submit
// button has focus.
func (m *Model) FocusedField() string {
	if m.focus < len(m.names) {
		return m.names[m.focus]
	}
	return ""
}

// Status returns the last status line and whether it reports an error.
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

// Quitting reports whether the user asked to leave.
func (m *Model) Quitting() bool { return m.quitting }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			if m.onButton() {
				return m, m.submit()
			}
			return m, m.setFocus(m.focus + 1)
		}
		if m.onButton() {
			return m, nil
		}
	}

	if m.onButton() {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.syncValue(m.focus)
	return m, cmd
}

func (m *Model) onButton() bool {
	return m.focus >= len(m.inputs)
}

// setFocus moves focus to index next, wrapping around the focus ring. The
// field losing focus is blurred before the next one is focused.
func (m *Model) setFocus(next int) tea.Cmd {
	ring := len(m.inputs) + 1
	next = ((next % ring) + ring) % ring
	if next == m.focus {
		return nil
	}
	if !m.onButton() {
		m.inputs[m.focus].Blur()
		m.event(m.form.Blur(m.names[m.focus]))
	}
	m.focus = next
	if m.onButton() {
		return nil
	}
	m.event(m.form.Focus(m.names[next]))
	return m.inputs[next].Focus()
}

func (m *Model) syncValue(i int) {
	v := m.inputs[i].Value()
	if v == m.form.Value(m.names[i]) {
		return
	}
	m.event(m.form.SetValue(m.names[i], v))
}

func (m *Model) event(err error) {
	if err != nil {
		m.log.Error(err, "form event rejected")
	}
}

func (m *Model) submit() tea.Cmd {
	title := m.form.Value(movie.FieldTitle)
	err := m.form.Submit(m.ctx)
	switch {
	case errors.Is(err, form.ErrSubmitDisabled):
		m.setStatus("Fill in every field correctly to add the movie", true)
		return nil
	case err != nil:
		m.setStatus(err.Error(), true)
		return nil
	}
	if m.form.Generation() != m.generation {
		m.mount()
	}
	m.setStatus(fmt.Sprintf("Added %q", strings.TrimSpace(title)), false)
	return m.inputs[0].Focus()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render returns the screen content as a string.
func (m *Model) Render() string {
	formView := m.renderForm()
	listView := m.renderCatalog()

	var body string
	formWidth := lipgloss.Width(formView)
	if m.width > 0 && formWidth+m.opts.CardWidth+4 <= m.width {
		body = lipgloss.JoinHorizontal(lipgloss.Top, formView, "    ", listView)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, formView, "", listView)
	}
	return body + "\n\n" + renderFooter(m.styles)
}

func (m *Model) renderForm() string {
	sections := []string{m.styles.heading.Render(m.opts.Heading), ""}
	for i, fld := range m.form.Fields() {
		sections = append(sections, m.renderField(i, fld))
	}
	sections = append(sections, "", m.renderButton())
	if m.status != "" {
		st := m.styles.status
		if m.statusErr {
			st = m.styles.statusError
		}
		sections = append(sections, "", st.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderField(i int, fld *form.Field) string {
	box := m.styles.input
	switch {
	case fld.Errors().Any():
		box = m.styles.inputError
	case i == m.focus:
		box = m.styles.inputFocused
	}
	lines := []string{
		m.styles.label.Render(fld.Label()),
		box.Render(m.inputs[i].View()),
	}
	for _, msg := range fld.Messages() {
		lines = append(lines, m.styles.message.Render(msg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderButton() string {
	cursor := "  "
	if m.onButton() {
		cursor = "▶ "
	}
	label := "[ " + m.opts.SubmitLabel + " ]"
	if !m.form.SubmitEnabled() {
		return cursor + m.styles.buttonDisabled.Render(label) + m.styles.muted.Render("  complete every field to enable")
	}
	return cursor + m.styles.button.Render(label)
}

func (m *Model) renderCatalog() string {
	entries := m.catalog.Entries()
	lines := []string{m.styles.heading.Render(fmt.Sprintf("Movies (%d)", len(entries)))}
	if len(entries) == 0 {
		lines = append(lines, m.styles.muted.Render("No movies yet"))
	}
	shown := limiter.Apply(limiter.Config{Tail: m.opts.MaxCards}, entries)
	if hidden := len(entries) - len(shown); hidden > 0 {
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("… %d earlier", hidden)))
	}
	for _, e := range shown {
		lines = append(lines, renderCard(e.Movie, m.opts.CardWidth, m.styles))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
