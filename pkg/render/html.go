package render

import (
	"html/template"

	"github.com/russross/blackfriday"
)

const (
	htmlFlags = blackfriday.HTML_USE_XHTML |
		blackfriday.HTML_SKIP_HTML |
		blackfriday.HTML_SAFELINK |
		blackfriday.HTML_NOFOLLOW_LINKS |
		blackfriday.HTML_HREF_TARGET_BLANK

	extensions = blackfriday.EXTENSION_NO_INTRA_EMPHASIS |
		blackfriday.EXTENSION_TABLES |
		blackfriday.EXTENSION_FENCED_CODE |
		blackfriday.EXTENSION_AUTOLINK |
		blackfriday.EXTENSION_STRIKETHROUGH |
		blackfriday.EXTENSION_SPACE_HEADERS
)

// ToHTML renders model output written in Markdown. Raw HTML in the input is dropped and
// punctuation is left as typed, so plain text comes out unchanged inside <p> tags.
func ToHTML(markdown string) template.HTML {
	renderer := blackfriday.HtmlRenderer(htmlFlags, "", "")
	return template.HTML(blackfriday.Markdown([]byte(markdown), renderer, extensions))
}
