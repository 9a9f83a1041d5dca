// Package blogsvc owns the blog retrieval pipeline: it queries the workspace
// database, normalizes each row into a BlogPost, and defines the service
// error contract. Nothing is cached; every call re-fetches upstream.
package blogsvc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"folio/models"
	"folio/notionapi"
)

var (
	// ErrNotFound means the query succeeded but no published post matched.
	ErrNotFound = errors.New("blog post not found")

	// ErrUpstream means the content source was unreachable or rejected the
	// query.
	ErrUpstream = errors.New("content source unavailable")
)

const (
	statusProperty  = "Status"
	slugProperty    = "Slug"
	createdProperty = "Created At"

	publishedStatus = "Published"
)

// Service exposes the two read operations of the blog API.
type Service struct {
	notion     *notionapi.Client
	databaseID string
}

// New creates a Service over one workspace database.
func New(client *notionapi.Client, databaseID string) *Service {
	return &Service{
		notion:     client,
		databaseID: databaseID,
	}
}

// ListPublished returns all published posts, newest first, with the content
// field left empty. Rows that fail to normalize are dropped.
func (s *Service) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	pages, err := s.notion.QueryDatabase(ctx, s.databaseID, notionapi.DatabaseQuery{
		Filter: &notionapi.Filter{
			Property: statusProperty,
			Status:   &notionapi.EqualsFilter{Equals: publishedStatus},
		},
		Sorts: []notionapi.Sort{
			{Property: createdProperty, Direction: "descending"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	posts := make([]models.BlogPost, 0, len(pages))
	for _, page := range pages {
		post, err := s.normalize(ctx, page)
		if err != nil {
			log.Printf("❌ Dropping post %s: %v", page.ID, err)
			continue
		}
		post.Content = ""
		posts = append(posts, post)
	}

	// The upstream query already sorts, but the ordering contract is ours:
	// newest first, ties keep source order.
	sort.SliceStable(posts, func(i, j int) bool {
		return createdTime(posts[i]).After(createdTime(posts[j]))
	})

	return posts, nil
}

// GetBySlug returns the published post with the given slug, content included.
// A row that exists but cannot be normalized is reported as not found, same
// as a row dropped from the list view.
func (s *Service) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	pages, err := s.notion.QueryDatabase(ctx, s.databaseID, notionapi.DatabaseQuery{
		Filter: &notionapi.Filter{
			And: []notionapi.Filter{
				{
					Property: statusProperty,
					Status:   &notionapi.EqualsFilter{Equals: publishedStatus},
				},
				{
					Property: slugProperty,
					RichText: &notionapi.EqualsFilter{Equals: slug},
				},
			},
		},
	})
	if err != nil {
		return models.BlogPost{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(pages) == 0 {
		return models.BlogPost{}, ErrNotFound
	}

	post, err := s.normalize(ctx, pages[0])
	if err != nil {
		log.Printf("❌ Post %s failed to normalize: %v", pages[0].ID, err)
		return models.BlogPost{}, ErrNotFound
	}
	return post, nil
}

func createdTime(post models.BlogPost) time.Time {
	if post.CreatedAt == nil {
		return time.Time{}
	}
	t, err := parseTimestamp(*post.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
