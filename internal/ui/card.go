package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/reel/internal/movie"
)

const minCardWidth = 20

// RenderCard draws one movie: title, description, image URL and a
// hyperlink to its IMDB page. Catalog records already satisfy the record
// invariant, so nothing is validated here.
func RenderCard(mv movie.Movie, width int, th Theme, noColor bool) string {
	return renderCard(mv, width, newStyles(th, noColor))
}

func renderCard(mv movie.Movie, width int, st styles) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	// border and horizontal padding take two columns each side
	inner := width - 4

	lines := []string{
		st.cardTitle.Render(truncate(mv.Title, inner)),
		st.cardText.Width(inner).Render(mv.Description),
		st.muted.Render(truncate("Image "+mv.ImgURL, inner)),
		imdbLink(mv) + st.muted.Render(" "+truncate(mv.ImdbID, inner-5)),
	}
	return st.card.Render(strings.Join(lines, "\n"))
}

// imdbLink renders "IMDB" as an OSC 8 hyperlink; terminals without support
// show the plain text.
func imdbLink(mv movie.Movie) string {
	return ansi.SetHyperlink(mv.ImdbURL) + "IMDB" + ansi.ResetHyperlink()
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
