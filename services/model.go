// Package services implements the social-graph integration layer: the
// authorization-code exchange, profile/media reads, the two-level comment
// tree aggregation and the comment write path. Every service is stateless;
// the caller holds the Session and passes it on each call.
package services

import "time"

// Session binds the credentials produced by a completed login: the user
// token from the code exchange, the page token actually used for Graph API
// reads/writes, and the Instagram Business account id linked to that page.
// It is built whole or not at all; no partial session ever escapes the
// exchange.
type Session struct {
	UserToken string
	PageToken string
	AccountID string
}

// Valid reports whether the session carries the fields the read/write
// paths need. The user token is only needed during the exchange itself.
func (s Session) Valid() bool {
	return s.PageToken != "" && s.AccountID != ""
}

// Profile is a read-only projection of the upstream account state. Never
// cached; refetched on demand.
type Profile struct {
	AccountID     string
	Username      string
	AvatarURL     string
	FollowerCount int
	MediaCount    int
}

// MediaType is the upstream media kind.
type MediaType string

const (
	MediaImage         MediaType = "IMAGE"
	MediaVideo         MediaType = "VIDEO"
	MediaCarouselAlbum MediaType = "CAROUSEL_ALBUM"
)

// MediaItem is one published post. CommentsPreview carries the first-level
// comments embedded in the media edge; the comment tree endpoint re-fetches
// them with replies instead of using this.
type MediaItem struct {
	ID              string
	Caption         string
	MediaURL        string
	MediaType       MediaType
	PublishedAt     time.Time
	LikeCount       int
	CommentCount    int
	CommentsPreview []Comment
}

// Comment is one node of the two-level thread. ParentID is empty for
// top-level comments; a comment with a ParentID never has replies of its
// own, because the upstream platform has no deeper nesting.
type Comment struct {
	ID           string
	Text         string
	AuthorHandle string
	PublishedAt  time.Time
	ParentID     string
	Replies      []Comment
}
