package models

// BlogPost is the stable record the front end consumes. It is immutable once
// built; list responses leave Content empty so it drops out of the JSON.
//
// PubDate/PubDateFormatted, Creator and Medium are legacy aliases the front
// end's type still declares; they mirror CreatedAt and carry fixed values.
type BlogPost struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Status           string   `json:"status"`
	CoverImage       *string  `json:"coverImage"`
	CreatedAt        *string  `json:"createdAt"`
	CreatedFormatted *string  `json:"createdFormatted"`
	PubDate          *string  `json:"pubDate"`
	PubDateFormatted *string  `json:"pubDateFormatted"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	ContentSnippet   string   `json:"contentSnippet"`
	Content          string   `json:"content,omitempty"`
	Creator          string   `json:"creator"`
	Link             string   `json:"link"`
	Medium           string   `json:"medium"`
}
