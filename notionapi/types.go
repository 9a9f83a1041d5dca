package notionapi

// The workspace API represents every page property and every content block as
// a tagged union: a "type" discriminator plus one payload key named after it.
// Only the payload variants this service reads are modeled; anything else
// decodes to a bare Type and is treated as unsupported downstream.

// RichText is one styled text fragment. Runs concatenate in order to form a
// property's or block's full text.
type RichText struct {
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// Option is a select / status / multi-select choice.
type Option struct {
	Name string `json:"name"`
}

// Date is a date property payload.
type Date struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// URLRef wraps a bare URL object.
type URLRef struct {
	URL string `json:"url"`
}

// FileRef is a file attachment: either an external link or an uploaded file,
// mutually exclusive, discriminated by Type.
type FileRef struct {
	Type     string  `json:"type"`
	Name     string  `json:"name,omitempty"`
	External *URLRef `json:"external,omitempty"`
	File     *URLRef `json:"file,omitempty"`
}

// Property is one page property. Exactly one payload field is set, matching
// Type.
type Property struct {
	ID          string     `json:"id,omitempty"`
	Type        string     `json:"type"`
	Title       []RichText `json:"title,omitempty"`
	RichText    []RichText `json:"rich_text,omitempty"`
	Date        *Date      `json:"date,omitempty"`
	Select      *Option    `json:"select,omitempty"`
	Status      *Option    `json:"status,omitempty"`
	MultiSelect []Option   `json:"multi_select,omitempty"`
	Files       []FileRef  `json:"files,omitempty"`
	CreatedTime string     `json:"created_time,omitempty"`
}

// Page is one database row.
type Page struct {
	ID          string              `json:"id"`
	CreatedTime string              `json:"created_time"`
	Cover       *FileRef            `json:"cover,omitempty"`
	Properties  map[string]Property `json:"properties"`
}

// TextPayload is the shared payload of text-bearing blocks.
type TextPayload struct {
	RichText []RichText `json:"rich_text"`
}

// CodePayload is a code block's payload.
type CodePayload struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// MediaPayload is the payload of image and video blocks: the file union plus
// an optional caption.
type MediaPayload struct {
	Type     string     `json:"type"`
	External *URLRef    `json:"external,omitempty"`
	File     *URLRef    `json:"file,omitempty"`
	Caption  []RichText `json:"caption,omitempty"`
}

// BookmarkPayload is a bookmark block's payload.
type BookmarkPayload struct {
	URL     string     `json:"url"`
	Caption []RichText `json:"caption,omitempty"`
}

// Block is one structural unit of a page body. Type selects which payload
// pointer is non-nil.
type Block struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Paragraph        *TextPayload     `json:"paragraph,omitempty"`
	Heading1         *TextPayload     `json:"heading_1,omitempty"`
	Heading2         *TextPayload     `json:"heading_2,omitempty"`
	Heading3         *TextPayload     `json:"heading_3,omitempty"`
	BulletedListItem *TextPayload     `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextPayload     `json:"numbered_list_item,omitempty"`
	Quote            *TextPayload     `json:"quote,omitempty"`
	Code             *CodePayload     `json:"code,omitempty"`
	Image            *MediaPayload    `json:"image,omitempty"`
	Callout          *TextPayload     `json:"callout,omitempty"`
	Toggle           *TextPayload     `json:"toggle,omitempty"`
	Bookmark         *BookmarkPayload `json:"bookmark,omitempty"`
	Video            *MediaPayload    `json:"video,omitempty"`
}

// URL resolves the file union to its link, or "" when neither side is set.
func (f *FileRef) URL() string {
	if f == nil {
		return ""
	}
	if f.Type == "external" {
		if f.External != nil {
			return f.External.URL
		}
		return ""
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}
