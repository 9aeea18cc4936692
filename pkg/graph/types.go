package graph

import (
	"fmt"
	"strings"
	"time"
)

// Account is a Facebook Page the authenticated user manages, as returned
// by GET /me/accounts. AccessToken is the page-scoped token.
type Account struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

// Profile is an Instagram Business account profile.
// https://developers.facebook.com/docs/instagram-api/reference/ig-user/#fields
type Profile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
	FollowersCount    int    `json:"followers_count"`
	MediaCount        int    `json:"media_count"`
}

// Media is a published Instagram media object. Comments carries the inline
// first-level comment preview the media edge can embed.
type Media struct {
	ID            string       `json:"id"`
	Caption       string       `json:"caption"`
	MediaURL      string       `json:"media_url"`
	MediaType     string       `json:"media_type"` // IMAGE, VIDEO or CAROUSEL_ALBUM
	Timestamp     Timestamp    `json:"timestamp"`
	LikeCount     int          `json:"likes_count"`
	CommentsCount int          `json:"comments_count"`
	Comments      *CommentEdge `json:"comments"`
}

// Comment is a single comment or reply node.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	Timestamp Timestamp `json:"timestamp"`
}

// CommentEdge is the {data,paging} envelope wrapping embedded comment lists.
type CommentEdge struct {
	Data   []Comment `json:"data"`
	Paging *Paging   `json:"paging"`
}

// Paging is the standard Graph API cursor envelope.
type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next"`
}

// AfterCursor returns the forward cursor, empty when there is no next page.
func (p *Paging) AfterCursor() string {
	if p == nil || p.Next == "" {
		return ""
	}
	return p.Cursors.After
}

// Timestamp handles the Graph API's ISO-8601 variant, which writes the
// zone offset without a colon ("2024-01-02T15:04:05+0000").
type Timestamp struct {
	time.Time
}

const graphTimeLayout = "2006-01-02T15:04:05-0700"

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{graphTimeLayout, time.RFC3339} {
		if ts, err := time.Parse(layout, s); err == nil {
			t.Time = ts
			return nil
		}
	}
	return fmt.Errorf("graph: cannot parse timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}
