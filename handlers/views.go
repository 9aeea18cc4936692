package handlers

import (
	"time"

	"github.com/MohdFaisalBidda/instagram-login-app/services"
)

// Wire shapes mirror the Graph API field names the frontend already
// understands: snake_case fields and {data:[…]} list envelopes.

type profileView struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
	FollowersCount    int    `json:"followers_count"`
	MediaCount        int    `json:"media_count"`
}

type pagingView struct {
	Cursors struct {
		After string `json:"after"`
	} `json:"cursors"`
}

type mediaListView struct {
	Data   []mediaView `json:"data"`
	Paging *pagingView `json:"paging,omitempty"`
}

type mediaView struct {
	ID            string           `json:"id"`
	Caption       string           `json:"caption,omitempty"`
	MediaURL      string           `json:"media_url"`
	MediaType     string           `json:"media_type"`
	Timestamp     time.Time        `json:"timestamp"`
	LikesCount    int              `json:"likes_count"`
	CommentsCount int              `json:"comments_count"`
	Comments      *commentListView `json:"comments,omitempty"`
}

type commentListView struct {
	Data   []commentView `json:"data"`
	Paging *pagingView   `json:"paging,omitempty"`
}

type commentView struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Username  string           `json:"username"`
	Timestamp time.Time        `json:"timestamp"`
	ParentID  string           `json:"parent_id,omitempty"`
	Replies   *commentListView `json:"replies,omitempty"`
}

func toProfileView(p *services.Profile) profileView {
	return profileView{
		ID:                p.AccountID,
		Username:          p.Username,
		ProfilePictureURL: p.AvatarURL,
		FollowersCount:    p.FollowerCount,
		MediaCount:        p.MediaCount,
	}
}

func toMediaListView(items []services.MediaItem, after string) mediaListView {
	view := mediaListView{
		Data:   make([]mediaView, 0, len(items)),
		Paging: newPagingView(after),
	}
	for _, item := range items {
		mv := mediaView{
			ID:            item.ID,
			Caption:       item.Caption,
			MediaURL:      item.MediaURL,
			MediaType:     string(item.MediaType),
			Timestamp:     item.PublishedAt,
			LikesCount:    item.LikeCount,
			CommentsCount: item.CommentCount,
		}
		if len(item.CommentsPreview) > 0 {
			preview := toCommentListView(item.CommentsPreview, "")
			mv.Comments = &preview
		}
		view.Data = append(view.Data, mv)
	}
	return view
}

func toCommentListView(comments []services.Comment, after string) commentListView {
	view := commentListView{
		Data:   make([]commentView, 0, len(comments)),
		Paging: newPagingView(after),
	}
	for _, c := range comments {
		cv := commentView{
			ID:        c.ID,
			Text:      c.Text,
			Username:  c.AuthorHandle,
			Timestamp: c.PublishedAt,
			ParentID:  c.ParentID,
		}
		// Top-level comments always carry a replies envelope, even when
		// empty; replies themselves never do.
		if c.ParentID == "" {
			replies := toCommentListView(c.Replies, "")
			cv.Replies = &replies
		}
		view.Data = append(view.Data, cv)
	}
	return view
}

func newPagingView(after string) *pagingView {
	if after == "" {
		return nil
	}
	p := &pagingView{}
	p.Cursors.After = after
	return p
}
