package generator

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Style keys understood by RenderDeckHTML. Anything else in the style map is
// ignored by the renderer but kept on the deck.
const (
	styleFontFamily   = "font_family"
	stylePrimaryColor = "primary_color"
	styleBackground   = "background_color"
	styleTextColor    = "text_color"
)

// RenderDeckHTML renders every slide into one standalone HTML page. Slide
// content is treated as Markdown.
func RenderDeckHTML(deck SlideDeck) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Proposta Comercial</title>\n")
	b.WriteString("<style>")
	b.WriteString(deckCSS(deck.Style))
	b.WriteString("</style>\n</head>\n<body>\n")

	for _, s := range deck.Slides {
		body, err := mdToHTML(s.Content)
		if err != nil {
			return "", fmt.Errorf("render slide %d: %w", s.ID, err)
		}
		fmt.Fprintf(&b, "<section class=\"slide slide-%s\" data-slide=\"%d\"", html.EscapeString(string(s.Type)), s.ID)
		if s.VisualType != "" {
			fmt.Fprintf(&b, " data-visual=\"%s\"", html.EscapeString(string(s.VisualType)))
		}
		b.WriteString(">\n")
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(s.Title))
		if s.Subtitle != "" {
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(s.Subtitle))
		}
		b.WriteString(body)
		b.WriteString("</section>\n")
	}

	fmt.Fprintf(&b, "<footer>%d slides, ~%d min</footer>\n", deck.TotalSlides, deck.EstimatedDuration)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func deckCSS(style Style) string {
	font := styleString(style, styleFontFamily, "Helvetica, Arial, sans-serif")
	primary := styleString(style, stylePrimaryColor, "#1f3a93")
	background := styleString(style, styleBackground, "#ffffff")
	text := styleString(style, styleTextColor, "#222222")

	return fmt.Sprintf(
		"body{font-family:%s;background:%s;color:%s;margin:0}"+
			".slide{min-height:90vh;padding:4em;border-bottom:1px solid #ddd}"+
			".slide h1{color:%s}",
		font, background, text, primary)
}

// styleString reads a string style value. Values containing characters that
// could break out of the stylesheet are ignored.
func styleString(style Style, key, def string) string {
	v, ok := style[key].(string)
	if !ok || strings.TrimSpace(v) == "" || strings.ContainsAny(v, "<>{};") {
		return def
	}
	return v
}
