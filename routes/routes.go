package routes

import (
	"github.com/julienschmidt/httprouter"

	"folio/blogs"
	"folio/middleware"
	"folio/ratelim"
)

func AddBlogRoutes(router *httprouter.Router, h *blogs.Handler, rl *ratelim.RateLimiter) {
	router.GET("/blogs", rl.Limit(middleware.RequestID(h.GetBlogs)))
	router.GET("/blog/:slug", rl.Limit(middleware.RequestID(h.GetBlogBySlug)))
}

func AddUtilityRoutes(router *httprouter.Router, h *blogs.Handler) {
	router.GET("/", h.Health)
	router.GET("/health", h.Health)
}
