package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/MohdFaisalBidda/instagram-login-app/pkg/graph"
)

// Exchange stages, in order. Each stage blocks on the previous one; a
// failure at any stage aborts the whole exchange.
const (
	StageToken    = "token"
	StageAccounts = "accounts"
	StageLink     = "link"
)

// Permissions requested from the user during login.
var loginScopes = []string{
	"instagram_basic",
	"instagram_manage_comments",
	"pages_show_list",
}

// ErrNoPages means the user's token manages no Facebook Pages at all.
var ErrNoPages = errors.New("no managed pages for this user")

// ErrNoLinkedAccount means the selected page has no Instagram Business
// account connected to it.
var ErrNoLinkedAccount = errors.New("page has no linked Instagram Business account")

// AuthExchangeError reports which stage of the login chain failed. It is
// fatal to the login attempt; the client restarts from /api/auth.
type AuthExchangeError struct {
	Stage string
	Err   error
}

func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf("auth exchange failed at stage %q: %v", e.Stage, e.Err)
}

func (e *AuthExchangeError) Unwrap() error {
	return e.Err
}

// AuthService turns a one-time authorization code into a Session.
type AuthService struct {
	// OAuth is exported so tests can point the token endpoint at a fake.
	OAuth oauth2.Config
	graph *graph.Client
}

// NewAuthService configures the Facebook login flow for the given app
// registration.
func NewAuthService(appID, appSecret, redirectURI string, gc *graph.Client) *AuthService {
	return &AuthService{
		OAuth: oauth2.Config{
			ClientID:     appID,
			ClientSecret: appSecret,
			RedirectURL:  redirectURI,
			Scopes:       loginScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://www.facebook.com/" + graph.Version + "/dialog/oauth",
				TokenURL:  "https://graph.facebook.com/" + graph.Version + "/oauth/access_token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		graph: gc,
	}
}

// AuthorizationURL builds the Facebook login dialog URL carrying the given
// anti-forgery state.
func (s *AuthService) AuthorizationURL(state string) string {
	return s.OAuth.AuthCodeURL(state)
}

// ExchangeAuthorizationCode runs the three-stage login chain:
//
//  1. "token"    — exchange the authorization code for a user access token
//  2. "accounts" — list the pages that token manages and pick the first
//  3. "link"     — resolve the page's linked Instagram Business account
//
// The Session is constructed only after all three stages succeed; any
// failure discards the intermediate tokens and returns no Session. Each
// upstream call is attempted exactly once.
//
// Picking the first page is a known simplification: users managing several
// pages get no say in which one is used.
func (s *AuthService) ExchangeAuthorizationCode(ctx context.Context, code string) (Session, error) {
	token, err := s.OAuth.Exchange(ctx, code)
	if err != nil {
		return Session{}, &AuthExchangeError{Stage: StageToken, Err: err}
	}

	accounts, err := s.graph.ListAccounts(ctx, token.AccessToken)
	if err != nil {
		return Session{}, &AuthExchangeError{Stage: StageAccounts, Err: err}
	}
	if len(accounts) == 0 {
		return Session{}, &AuthExchangeError{Stage: StageAccounts, Err: ErrNoPages}
	}
	page := accounts[0]
	slog.Debug("selected managed page", "page_id", page.ID, "name", page.Name, "total", len(accounts))

	accountID, err := s.graph.GetLinkedAccount(ctx, page.ID, page.AccessToken)
	if err != nil {
		return Session{}, &AuthExchangeError{Stage: StageLink, Err: err}
	}
	if accountID == "" {
		return Session{}, &AuthExchangeError{Stage: StageLink, Err: ErrNoLinkedAccount}
	}

	return Session{
		UserToken: token.AccessToken,
		PageToken: page.AccessToken,
		AccountID: accountID,
	}, nil
}
