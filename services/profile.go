package services

import (
	"context"

	"github.com/MohdFaisalBidda/instagram-login-app/pkg/errors"
	"github.com/MohdFaisalBidda/instagram-login-app/pkg/graph"
)

// ProfileService reads the account profile and its media list. Both calls
// are independent, side-effect-free single reads; callers may issue them
// concurrently.
type ProfileService struct {
	graph *graph.Client
}

func NewProfileService(gc *graph.Client) *ProfileService {
	return &ProfileService{graph: gc}
}

// FetchProfile reads the account profile. No caching; every call hits
// upstream.
func (s *ProfileService) FetchProfile(ctx context.Context, session Session) (*Profile, error) {
	if !session.Valid() {
		return nil, errors.Validation("accessToken and instagramId are required")
	}

	raw, err := s.graph.GetProfile(ctx, session.AccountID, session.PageToken)
	if err != nil {
		return nil, err
	}

	return &Profile{
		AccountID:     raw.ID,
		Username:      raw.Username,
		AvatarURL:     raw.ProfilePictureURL,
		FollowerCount: raw.FollowersCount,
		MediaCount:    raw.MediaCount,
	}, nil
}

// FetchMedia reads the account's published media, upstream order preserved.
// after requests the page following that cursor; the returned cursor is
// empty on the last page.
func (s *ProfileService) FetchMedia(ctx context.Context, session Session, after string) ([]MediaItem, string, error) {
	if !session.Valid() {
		return nil, "", errors.Validation("accessToken and instagramId are required")
	}

	raw, next, err := s.graph.ListMedia(ctx, session.AccountID, session.PageToken, after)
	if err != nil {
		return nil, "", err
	}

	items := make([]MediaItem, 0, len(raw))
	for _, m := range raw {
		item := MediaItem{
			ID:           m.ID,
			Caption:      m.Caption,
			MediaURL:     m.MediaURL,
			MediaType:    MediaType(m.MediaType),
			PublishedAt:  m.Timestamp.Time,
			LikeCount:    m.LikeCount,
			CommentCount: m.CommentsCount,
		}
		if m.Comments != nil {
			item.CommentsPreview = make([]Comment, 0, len(m.Comments.Data))
			for _, c := range m.Comments.Data {
				item.CommentsPreview = append(item.CommentsPreview, Comment{
					ID:           c.ID,
					Text:         c.Text,
					AuthorHandle: c.Username,
					PublishedAt:  c.Timestamp.Time,
				})
			}
		}
		items = append(items, item)
	}
	return items, next, nil
}
