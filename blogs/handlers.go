// Package blogs holds the server-mode HTTP handlers for the blog API.
package blogs

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"folio/blogsvc"
	"folio/utils"
)

// Handler serves the blog routes.
type Handler struct {
	svc   *blogsvc.Service
	debug bool
}

// NewHandler wires the retrieval service into HTTP handlers. When env is
// "development", upstream error detail is passed through in 500 bodies.
func NewHandler(svc *blogsvc.Service, env string) *Handler {
	return &Handler{
		svc:   svc,
		debug: env == "development",
	}
}

// GetBlogs lists all published posts, newest first, content omitted.
func (h *Handler) GetBlogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log.Println("📡 Fetching blogs from content database...")

	posts, err := h.svc.ListPublished(r.Context())
	if err != nil {
		h.respondUpstreamError(w, "Failed to fetch blogs", err)
		return
	}

	log.Printf("✅ Returning %d published blogs", len(posts))
	utils.RespondWithJSON(w, http.StatusOK, posts)
}

// GetBlogBySlug returns one published post with its rendered content.
func (h *Handler) GetBlogBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")
	if slug == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Slug is required")
		return
	}

	log.Printf("📡 Fetching blog post with slug: %s", slug)

	post, err := h.svc.GetBySlug(r.Context(), slug)
	if errors.Is(err, blogsvc.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if err != nil {
		h.respondUpstreamError(w, "Failed to fetch blog", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, post)
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":   "Blog API Server is running",
		"status":    "healthy",
		"endpoints": []string{"/blogs", "/blog/:slug"},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// respondUpstreamError logs the upstream failure in full and answers with a
// generic 500; detail crosses the boundary only in debug mode.
func (h *Handler) respondUpstreamError(w http.ResponseWriter, msg string, err error) {
	log.Printf("❌ %s: %v", msg, err)

	body := utils.M{
		"error":   msg,
		"message": "The content source is currently unavailable",
	}
	if h.debug {
		body["details"] = err.Error()
	}
	utils.RespondWithJSON(w, http.StatusInternalServerError, body)
}
