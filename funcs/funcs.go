// Package funcs exposes the blog API as standalone http.HandlerFuncs for
// function-style hosting, where each invocation gets a bare handler with no
// surrounding router or middleware chain. The contract matches server mode;
// CORS, preflight, and method checks are handled inline here.
package funcs

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"folio/blogsvc"
	"folio/notionapi"
	"folio/utils"
)

func writeCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Content-Type", "application/json")
}

// preflight handles OPTIONS and method filtering. It reports whether the
// request was fully answered here.
func preflight(w http.ResponseWriter, r *http.Request) bool {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return true
	}
	return false
}

// serviceFromEnv builds the pipeline for one invocation. Function mode has
// no startup phase, so missing credentials surface per call.
func serviceFromEnv() (*blogsvc.Service, error) {
	apiKey := os.Getenv("NOTION_API_KEY")
	databaseID := os.Getenv("NOTION_DATABASE_ID")
	if apiKey == "" || databaseID == "" {
		return nil, errors.New("missing required environment variables")
	}

	client, err := notionapi.NewClient(notionapi.Config{
		APIKey:  apiKey,
		BaseURL: os.Getenv("NOTION_BASE_URL"),
	})
	if err != nil {
		return nil, fmt.Errorf("create workspace client: %w", err)
	}
	return blogsvc.New(client, databaseID), nil
}

// Blogs serves the published post listing.
func Blogs(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}

	svc, err := serviceFromEnv()
	if err != nil {
		respondError(w, "Failed to fetch blogs", err)
		return
	}

	log.Println("📡 Fetching blogs from content database...")
	posts, err := svc.ListPublished(r.Context())
	if err != nil {
		respondError(w, "Failed to fetch blogs", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, posts)
}

// Blog serves one post by slug, taken from the last path segment.
func Blog(w http.ResponseWriter, r *http.Request) {
	if preflight(w, r) {
		return
	}

	slug := lastPathSegment(r.URL.Path)
	if slug == "" || slug == "blog" {
		utils.RespondWithError(w, http.StatusBadRequest, "Slug is required")
		return
	}

	svc, err := serviceFromEnv()
	if err != nil {
		respondError(w, "Failed to fetch blog", err)
		return
	}

	log.Printf("📡 Fetching blog post with slug: %s", slug)
	post, err := svc.GetBySlug(r.Context(), slug)
	if errors.Is(err, blogsvc.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if err != nil {
		respondError(w, "Failed to fetch blog", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, post)
}

func lastPathSegment(p string) string {
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

func respondError(w http.ResponseWriter, msg string, err error) {
	log.Printf("❌ %s: %v", msg, err)
	utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
		"error":   msg,
		"message": "The content source is currently unavailable",
	})
}
