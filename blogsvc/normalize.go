package blogsvc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"folio/extract"
	"folio/models"
	"folio/notionapi"
	"folio/renderhtml"
)

const (
	untitledFallback = "Untitled"
	contentFallback  = "Content not available"

	snippetLimit = 200
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// normalize builds exactly one BlogPost from a database row. Missing fields
// get documented defaults; only a row with no property bag at all is fatal,
// and the caller decides what a fatal row means.
func (s *Service) normalize(ctx context.Context, page notionapi.Page) (post models.BlogPost, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalize page %s: %v", page.ID, r)
		}
	}()

	if page.ID == "" || page.Properties == nil {
		return models.BlogPost{}, errors.New("page has no properties")
	}

	props := page.Properties

	title := extract.String(props, "Title")
	slug := extract.String(props, slugProperty)
	status := extract.String(props, statusProperty)
	createdAt := extract.String(props, createdProperty)
	category := extract.String(props, "Category")
	tags := extract.StringList(props, "Tags")

	summary := extract.String(props, "Meta Description")
	if summary == "" {
		summary = extract.String(props, "Excerpt")
	}

	cover := extract.String(props, "Cover")
	if cover == "" {
		cover = page.Cover.URL()
	}

	if createdAt == "" {
		createdAt = page.CreatedTime
	}

	html := s.renderContent(ctx, page.ID)

	snippet := summary
	if snippet == "" {
		snippet = renderhtml.StripTags(html)
	}
	snippet = clamp(snippet, snippetLimit)

	content := html
	if content == "" {
		if summary != "" {
			content = summary
		} else {
			content = contentFallback
		}
	}

	if status == "" {
		status = "Draft"
	}
	finalSlug := slug
	if finalSlug == "" {
		finalSlug = slugFromTitle(title)
	}
	finalTitle := title
	if finalTitle == "" {
		finalTitle = untitledFallback
	}

	createdPtr := optional(createdAt)
	formattedPtr := formatDate(createdAt)

	return models.BlogPost{
		ID:               page.ID,
		Title:            finalTitle,
		Slug:             finalSlug,
		Status:           status,
		CoverImage:       optional(cover),
		CreatedAt:        createdPtr,
		CreatedFormatted: formattedPtr,
		PubDate:          createdPtr,
		PubDateFormatted: formattedPtr,
		Category:         category,
		Tags:             tags,
		ContentSnippet:   snippet,
		Content:          content,
		Creator:          "Author",
		Link:             "/blog/" + finalSlug,
		Medium:           "notion",
	}, nil
}

// renderContent fetches and renders the page body. A fetch failure is
// absorbed here: the post falls back to its summary text downstream.
func (s *Service) renderContent(ctx context.Context, pageID string) string {
	blocks, err := s.notion.ListBlockChildren(ctx, pageID)
	if err != nil {
		log.Printf("❌ Error fetching blocks for page %s: %v", pageID, err)
		return ""
	}
	return renderhtml.Blocks(blocks)
}

// slugFromTitle derives a routing key from the title: lowercase, whitespace
// runs collapsed to hyphens. A missing title yields "untitled".
func slugFromTitle(title string) string {
	if title == "" {
		return "untitled"
	}
	return whitespaceRuns.ReplaceAllString(strings.ToLower(title), "-")
}

func clamp(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseTimestamp accepts the two timestamp shapes the source emits: a full
// RFC 3339 instant or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// formatDate renders a source timestamp as "Jan 2, 2006", or nil when the
// timestamp is absent or unparseable.
func formatDate(s string) *string {
	if s == "" {
		return nil
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return nil
	}
	formatted := t.Format("Jan 2, 2006")
	return &formatted
}
