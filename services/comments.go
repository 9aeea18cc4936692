package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MohdFaisalBidda/instagram-login-app/pkg/errors"
	"github.com/MohdFaisalBidda/instagram-login-app/pkg/graph"
)

// AggregationError wraps the reply fetch that aborted a comment tree
// aggregation. CommentID names the branch that failed.
type AggregationError struct {
	CommentID string
	Err       error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregating replies for comment %s: %v", e.CommentID, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// CommentService reads comment threads and writes new comments.
type CommentService struct {
	graph *graph.Client
}

func NewCommentService(gc *graph.Client) *CommentService {
	return &CommentService{graph: gc}
}

// FetchCommentTree returns the media's two-level comment tree: the first
// page of top-level comments, each with its full reply list. Reply fetches
// fan out concurrently, one per top-level comment, and the call waits for
// all of them before returning; results land by index, so the output order
// is the upstream order regardless of which fetch finished first.
//
// The join is all-or-nothing: one failed reply fetch fails the whole call
// with an AggregationError naming the comment, and cancels the in-flight
// sibling fetches. Threads past the first upstream page are not requested
// unless the caller passes the previous page's cursor in after.
func (s *CommentService) FetchCommentTree(ctx context.Context, mediaID string, session Session, after string) ([]Comment, string, error) {
	if mediaID == "" {
		return nil, "", errors.Validation("mediaId is required")
	}
	if session.PageToken == "" {
		return nil, "", errors.Validation("accessToken is required")
	}

	top, next, err := s.graph.ListComments(ctx, mediaID, session.PageToken, after)
	if err != nil {
		return nil, "", err
	}

	tree := make([]Comment, len(top))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range top {
		i, c := i, c
		g.Go(func() error {
			replies, _, err := s.graph.ListReplies(ctx, c.ID, session.PageToken, "")
			if err != nil {
				return &AggregationError{CommentID: c.ID, Err: err}
			}

			node := Comment{
				ID:           c.ID,
				Text:         c.Text,
				AuthorHandle: c.Username,
				PublishedAt:  c.Timestamp.Time,
				Replies:      make([]Comment, 0, len(replies)),
			}
			for _, r := range replies {
				node.Replies = append(node.Replies, Comment{
					ID:           r.ID,
					Text:         r.Text,
					AuthorHandle: r.Username,
					PublishedAt:  r.Timestamp.Time,
					ParentID:     c.ID,
				})
			}
			tree[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	slog.Debug("comment tree assembled", "media_id", mediaID, "top_level", len(tree))
	return tree, next, nil
}

// PostComment writes a new comment and returns its id. With a parent
// comment id the write targets that comment's reply edge; without one it
// targets the media's top-level comment edge. The upstream platform has no
// third nesting level, so a "reply to a reply" comes back as a sibling
// reply under the same top-level parent.
//
// Only the new id is returned; callers re-fetch the tree to see the comment
// in context.
func (s *CommentService) PostComment(ctx context.Context, mediaID, text string, session Session, parentCommentID string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.Validation("message must not be empty")
	}
	if session.PageToken == "" {
		return "", errors.Validation("accessToken is required")
	}

	if parentCommentID != "" {
		return s.graph.CreateReply(ctx, parentCommentID, text, session.PageToken)
	}
	if mediaID == "" {
		return "", errors.Validation("mediaId is required")
	}
	return s.graph.CreateComment(ctx, mediaID, text, session.PageToken)
}
