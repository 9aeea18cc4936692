// Package handlers exposes the HTTP surface consumed by the presentation
// layer. Handlers are stateless; every credential arrives as a request
// parameter and is threaded through as an explicit Session.
package handlers

import (
	"net/http"

	"github.com/MohdFaisalBidda/instagram-login-app/pkg/statestore"
	"github.com/MohdFaisalBidda/instagram-login-app/services"
)

type Handler struct {
	auth        *services.AuthService
	profiles    *services.ProfileService
	comments    *services.CommentService
	states      *statestore.Store
	frontendURL string
}

func New(auth *services.AuthService, profiles *services.ProfileService, comments *services.CommentService, states *statestore.Store, frontendURL string) *Handler {
	return &Handler{
		auth:        auth,
		profiles:    profiles,
		comments:    comments,
		states:      states,
		frontendURL: frontendURL,
	}
}

// Routes builds the API mux. Reads share the loose per-IP limit, the
// comment write gets the strict one.
func (h *Handler) Routes(limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth", limiter.ViewLimit.RateLimit(h.GetAuthURL))
	mux.HandleFunc("/api/callback", limiter.ViewLimit.RateLimit(h.AuthCallback))
	mux.HandleFunc("/api/profile", limiter.ViewLimit.RateLimit(h.GetProfile))
	mux.HandleFunc("/api/media", limiter.ViewLimit.RateLimit(h.GetMedia))
	mux.HandleFunc("/api/comments", limiter.ViewLimit.RateLimit(h.GetComments))
	mux.HandleFunc("/api/comment", limiter.WriteLimit.RateLimit(h.PostComment))
	return corsMiddleware(h.frontendURL, mux)
}

// sessionFromQuery reads the per-request credentials the caller supplies.
// The accessToken parameter carries the page token (the callback hands it
// to the client under that name).
func sessionFromQuery(r *http.Request) services.Session {
	q := r.URL.Query()
	return services.Session{
		PageToken: q.Get("accessToken"),
		AccountID: q.Get("instagramId"),
	}
}
