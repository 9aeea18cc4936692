package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/MohdFaisalBidda/instagram-login-app/pkg/errors"
	"github.com/MohdFaisalBidda/instagram-login-app/services"
)

// GetAuthURL starts the login flow: issues an anti-forgery state and hands
// the client the Facebook login dialog URL.
func (h *Handler) GetAuthURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.states.Issue(r.Context())
	if err != nil {
		errors.HandleError(w, err)
		return
	}

	errors.WriteJSON(w, http.StatusOK, map[string]string{
		"authUrl": h.auth.AuthorizationURL(state),
	})
}

// AuthCallback completes the login flow. It validates the state, runs the
// three-stage token exchange and redirects back to the frontend with the
// session fields as query parameters. Any stage failure yields no session;
// the client restarts from /api/auth.
func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	if errCode := query.Get("error"); errCode != "" {
		slog.Warn("login dialog returned error", "error", errCode, "description", query.Get("error_description"))
		errors.HandleError(w, errors.Validation("login was not completed"))
		return
	}

	ok, err := h.states.Redeem(r.Context(), query.Get("state"))
	if err != nil {
		errors.HandleError(w, err)
		return
	}
	if !ok {
		errors.HandleError(w, errors.Validation("invalid or expired state"))
		return
	}

	code := query.Get("code")
	if code == "" {
		errors.HandleError(w, errors.Validation("code is required"))
		return
	}

	session, err := h.auth.ExchangeAuthorizationCode(r.Context(), code)
	if err != nil {
		slog.Error("token exchange failed", "error", err)
		errors.HandleError(w, err)
		return
	}

	redirect := h.frontendURL + "/auth/success?" + url.Values{
		"accessToken": {session.PageToken},
		"instagramId": {session.AccountID},
	}.Encode()
	http.Redirect(w, r, redirect, http.StatusFound)
}

// GetProfile returns the account profile for the supplied session.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profile, err := h.profiles.FetchProfile(r.Context(), sessionFromQuery(r))
	if err != nil {
		errors.HandleError(w, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, toProfileView(profile))
}

// GetMedia returns the account's published posts, upstream order preserved.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, next, err := h.profiles.FetchMedia(r.Context(), sessionFromQuery(r), r.URL.Query().Get("after"))
	if err != nil {
		errors.HandleError(w, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, toMediaListView(items, next))
}

// GetComments returns the two-level comment tree for one media object.
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	session := sessionFromQuery(r)
	tree, next, err := h.comments.FetchCommentTree(r.Context(), query.Get("mediaId"), session, query.Get("after"))
	if err != nil {
		errors.HandleError(w, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, toCommentListView(tree, next))
}

type postCommentRequest struct {
	MediaID          string `json:"mediaId"`
	Message          string `json:"message"`
	AccessToken      string `json:"accessToken"`
	ReplyToCommentID string `json:"replyToCommentId"`
}

// PostComment writes a new top-level comment, or a reply when
// replyToCommentId is set. Only the new comment's id is returned; the
// client re-fetches the tree to see it in context.
func (h *Handler) PostComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.HandleError(w, errors.Validation("invalid request body"))
		return
	}

	session := services.Session{PageToken: req.AccessToken}
	id, err := h.comments.PostComment(r.Context(), req.MediaID, req.Message, session, req.ReplyToCommentID)
	if err != nil {
		errors.HandleError(w, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}
