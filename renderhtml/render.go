// Package renderhtml converts a page's block sequence into the HTML fragment
// string the portfolio front end stores and renders verbatim. The per-kind
// fragments are a frozen contract: changing any of them requires a
// coordinated front-end change.
package renderhtml

import (
	"fmt"
	"regexp"
	"strings"

	"folio/notionapi"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Blocks renders a block sequence to one HTML string, each block's rendering
// concatenated in input order. Unsupported kinds contribute nothing.
func Blocks(blocks []notionapi.Block) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(Block(block))
	}
	return b.String()
}

// Block renders one block. A block whose payload is missing, and any kind
// outside the supported set, renders to "".
func Block(b notionapi.Block) string {
	switch b.Type {
	case "paragraph":
		if b.Paragraph == nil {
			return ""
		}
		return "<p>" + extractText(b.Paragraph) + "</p>"
	case "heading_1":
		if b.Heading1 == nil {
			return ""
		}
		return "<h1>" + extractText(b.Heading1) + "</h1>"
	case "heading_2":
		if b.Heading2 == nil {
			return ""
		}
		return "<h2>" + extractText(b.Heading2) + "</h2>"
	case "heading_3":
		if b.Heading3 == nil {
			return ""
		}
		return "<h3>" + extractText(b.Heading3) + "</h3>"
	case "bulleted_list_item":
		// List items come out as bare <li> with no wrapping <ul>/<ol>;
		// the front end relies on the fragments exactly as-is.
		if b.BulletedListItem == nil {
			return ""
		}
		return "<li>" + extractText(b.BulletedListItem) + "</li>"
	case "numbered_list_item":
		if b.NumberedListItem == nil {
			return ""
		}
		return "<li>" + extractText(b.NumberedListItem) + "</li>"
	case "quote":
		if b.Quote == nil {
			return ""
		}
		return "<blockquote>" + extractText(b.Quote) + "</blockquote>"
	case "code":
		if b.Code == nil {
			return ""
		}
		language := b.Code.Language
		if language == "" {
			language = "text"
		}
		return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`, language, Text(b.Code.RichText))
	case "image":
		if b.Image == nil {
			return ""
		}
		imageURL := mediaURL(b.Image)
		if imageURL == "" {
			return ""
		}
		return fmt.Sprintf(`<figure><img src="%s" alt="Blog image" loading="lazy"><figcaption>%s</figcaption></figure>`, imageURL, Text(b.Image.Caption))
	case "divider":
		return "<hr />"
	case "callout":
		if b.Callout == nil {
			return ""
		}
		return "<div class=\"callout\">" + extractText(b.Callout) + "</div>"
	case "toggle":
		// Nested toggle children are not fetched or rendered.
		if b.Toggle == nil {
			return ""
		}
		return "<details><summary>" + extractText(b.Toggle) + "</summary></details>"
	case "bookmark":
		if b.Bookmark == nil {
			return ""
		}
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, b.Bookmark.URL, b.Bookmark.URL)
	case "video":
		// Only externally hosted video embeds; uploaded files are skipped.
		if b.Video == nil || b.Video.Type != "external" || b.Video.External == nil || b.Video.External.URL == "" {
			return ""
		}
		return fmt.Sprintf(`<iframe src="%s" width="100%%" height="400" allow="autoplay"></iframe>`, b.Video.External.URL)
	case "table":
		// Table structure is not reconstructed.
		return "<table><tr><td>Table content</td></tr></table>"
	default:
		return ""
	}
}

// Text concatenates the plain text of rich-text runs in order.
func Text(runs []notionapi.RichText) string {
	var out strings.Builder
	for _, run := range runs {
		out.WriteString(run.PlainText)
	}
	return out.String()
}

// StripTags removes markup from rendered HTML, for snippet derivation.
func StripTags(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

func extractText(p *notionapi.TextPayload) string {
	if p == nil {
		return ""
	}
	return Text(p.RichText)
}

func mediaURL(m *notionapi.MediaPayload) string {
	if m == nil {
		return ""
	}
	if m.Type == "external" {
		if m.External != nil {
			return m.External.URL
		}
		return ""
	}
	if m.File != nil {
		return m.File.URL
	}
	return ""
}
