package blogsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/notionapi"
)

const testDatabaseID = "db-1"

// fakeUpstream is a stand-in for the workspace API: one canned page set for
// database queries and per-page block sequences for body fetches.
type fakeUpstream struct {
	pages       []notionapi.Page
	blocks      map[string][]notionapi.Block
	failQuery   bool
	failBlocks  bool
	queryBodies []map[string]any
}

func (f *fakeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/databases/"+testDatabaseID+"/query", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.queryBodies = append(f.queryBodies, body)

		if f.failQuery {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"code": "internal_server_error", "message": "boom"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": f.pages})
	})
	mux.HandleFunc("/v1/blocks/", func(w http.ResponseWriter, r *http.Request) {
		if f.failBlocks {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "blocks unavailable"})
			return
		}
		pageID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/blocks/"), "/children")
		_ = json.NewEncoder(w).Encode(map[string]any{"results": f.blocks[pageID]})
	})
	return mux
}

func newTestService(t *testing.T, up *fakeUpstream) *Service {
	t.Helper()
	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)

	client, err := notionapi.NewClient(notionapi.Config{APIKey: "secret", BaseURL: srv.URL})
	require.NoError(t, err)
	return New(client, testDatabaseID)
}

func titleProp(s string) notionapi.Property {
	return notionapi.Property{Type: "title", Title: []notionapi.RichText{{PlainText: s}}}
}

func richTextProp(s string) notionapi.Property {
	return notionapi.Property{Type: "rich_text", RichText: []notionapi.RichText{{PlainText: s}}}
}

func statusProp(s string) notionapi.Property {
	return notionapi.Property{Type: "status", Status: &notionapi.Option{Name: s}}
}

func dateProp(s string) notionapi.Property {
	return notionapi.Property{Type: "date", Date: &notionapi.Date{Start: s}}
}

func publishedPage(id, title, slug, created string) notionapi.Page {
	return notionapi.Page{
		ID:          id,
		CreatedTime: "2024-01-01T00:00:00Z",
		Properties: map[string]notionapi.Property{
			"Title":      titleProp(title),
			"Slug":       richTextProp(slug),
			"Status":     statusProp("Published"),
			"Created At": dateProp(created),
		},
	}
}

func paragraph(text string) notionapi.Block {
	return notionapi.Block{Type: "paragraph", Paragraph: &notionapi.TextPayload{RichText: []notionapi.RichText{{PlainText: text}}}}
}

func TestListPublished_SortedNewestFirst(t *testing.T) {
	up := &fakeUpstream{
		pages: []notionapi.Page{
			publishedPage("p1", "Old", "old", "2023-01-10"),
			publishedPage("p2", "New", "new", "2024-06-01"),
			publishedPage("p3", "Mid", "mid", "2023-08-15"),
		},
	}
	svc := newTestService(t, up)

	posts, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].Slug)
	assert.Equal(t, "mid", posts[1].Slug)
	assert.Equal(t, "old", posts[2].Slug)
}

func TestListPublished_TiesPreserveSourceOrder(t *testing.T) {
	up := &fakeUpstream{
		pages: []notionapi.Page{
			publishedPage("p1", "First", "first", "2024-03-03"),
			publishedPage("p2", "Second", "second", "2024-03-03"),
			publishedPage("p3", "Third", "third", "2024-03-03"),
		},
	}
	svc := newTestService(t, up)

	posts, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "first", posts[0].Slug)
	assert.Equal(t, "second", posts[1].Slug)
	assert.Equal(t, "third", posts[2].Slug)
}

func TestListPublished_OmitsContent(t *testing.T) {
	up := &fakeUpstream{
		pages:  []notionapi.Page{publishedPage("p1", "Post", "post", "2024-01-02")},
		blocks: map[string][]notionapi.Block{"p1": {paragraph("full body text")}},
	}
	svc := newTestService(t, up)

	posts, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Empty(t, posts[0].Content)
	// the body still feeds the snippet
	assert.Equal(t, "full body text", posts[0].ContentSnippet)
}

func TestListPublished_DropsUnnormalizableRecord(t *testing.T) {
	up := &fakeUpstream{
		pages: []notionapi.Page{
			publishedPage("p1", "Good", "good", "2024-01-02"),
			{ID: "p2"}, // no property bag at all
		},
	}
	svc := newTestService(t, up)

	posts, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "good", posts[0].Slug)
}

func TestListPublished_UpstreamFailure(t *testing.T) {
	svc := newTestService(t, &fakeUpstream{failQuery: true})

	_, err := svc.ListPublished(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestListPublished_FiltersByPublishedStatus(t *testing.T) {
	up := &fakeUpstream{}
	svc := newTestService(t, up)

	_, err := svc.ListPublished(context.Background())
	require.NoError(t, err)

	require.Len(t, up.queryBodies, 1)
	filter := up.queryBodies[0]["filter"].(map[string]any)
	assert.Equal(t, "Status", filter["property"])
	assert.Equal(t, "Published", filter["status"].(map[string]any)["equals"])
}

func TestGetBySlug_IncludesContent(t *testing.T) {
	up := &fakeUpstream{
		pages:  []notionapi.Page{publishedPage("p1", "Post", "post", "2024-01-02")},
		blocks: map[string][]notionapi.Block{"p1": {paragraph("Hi "), paragraph("there")}},
	}
	svc := newTestService(t, up)

	post, err := svc.GetBySlug(context.Background(), "post")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi </p><p>there</p>", post.Content)
	assert.Equal(t, "/blog/post", post.Link)
	assert.Equal(t, "Published", post.Status)
}

func TestGetBySlug_NotFoundOnZeroRows(t *testing.T) {
	svc := newTestService(t, &fakeUpstream{})

	_, err := svc.GetBySlug(context.Background(), "missing-post")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestGetBySlug_UpstreamFailure(t *testing.T) {
	svc := newTestService(t, &fakeUpstream{failQuery: true})

	_, err := svc.GetBySlug(context.Background(), "any")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGetBySlug_NormalizationFaultIsNotFound(t *testing.T) {
	up := &fakeUpstream{pages: []notionapi.Page{{ID: "p1"}}}
	svc := newTestService(t, up)

	_, err := svc.GetBySlug(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBySlug_Idempotent(t *testing.T) {
	up := &fakeUpstream{
		pages:  []notionapi.Page{publishedPage("p1", "Post", "post", "2024-01-02")},
		blocks: map[string][]notionapi.Block{"p1": {paragraph("body")}},
	}
	svc := newTestService(t, up)

	first, err := svc.GetBySlug(context.Background(), "post")
	require.NoError(t, err)
	second, err := svc.GetBySlug(context.Background(), "post")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetBySlug_SendsSlugFilter(t *testing.T) {
	up := &fakeUpstream{pages: []notionapi.Page{publishedPage("p1", "Post", "post", "2024-01-02")}}
	svc := newTestService(t, up)

	_, err := svc.GetBySlug(context.Background(), "post")
	require.NoError(t, err)

	require.Len(t, up.queryBodies, 1)
	and := up.queryBodies[0]["filter"].(map[string]any)["and"].([]any)
	require.Len(t, and, 2)
	slugCond := and[1].(map[string]any)
	assert.Equal(t, "Slug", slugCond["property"])
	assert.Equal(t, "post", slugCond["rich_text"].(map[string]any)["equals"])
}
