package graph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListComments_ParsesEnvelopeAndCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+Version+"/m1/comments" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("access_token"); got != "tok" {
			t.Errorf("expected access_token 'tok', got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{"id":"c1","text":"first","username":"alice","timestamp":"2024-01-02T15:04:05+0000"},
				{"id":"c2","text":"second","username":"bob","timestamp":"2024-01-03T08:00:00+0000"}
			],
			"paging": {"cursors":{"before":"b","after":"a2"},"next":"https://graph.facebook.com/next"}
		}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	comments, next, err := client.ListComments(context.Background(), "m1", "tok", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].ID != "c1" || comments[1].ID != "c2" {
		t.Errorf("order not preserved: %q, %q", comments[0].ID, comments[1].ID)
	}
	if comments[0].Username != "alice" {
		t.Errorf("expected username 'alice', got %q", comments[0].Username)
	}
	if comments[0].Timestamp.IsZero() {
		t.Error("expected parsed timestamp")
	}
	if next != "a2" {
		t.Errorf("expected cursor 'a2', got %q", next)
	}
}

func TestListComments_NoNextPageMeansNoCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[],"paging":{"cursors":{"before":"b","after":"a"}}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, next, err := client.ListComments(context.Background(), "m1", "tok", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != "" {
		t.Errorf("expected empty cursor without a next link, got %q", next)
	}
}

func TestListComments_ForwardsAfterCursor(t *testing.T) {
	var gotAfter string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAfter = r.URL.Query().Get("after")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, _, err := client.ListComments(context.Background(), "m1", "tok", "cursor123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAfter != "cursor123" {
		t.Errorf("expected after=cursor123, got %q", gotAfter)
	}
}

func TestAPIError_ParsesGraphErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190,"fbtrace_id":"Axyz"}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.GetProfile(context.Background(), "ig1", "bad")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Code != 190 || apiErr.Type != "OAuthException" {
		t.Errorf("envelope not parsed: %+v", apiErr)
	}
	if !apiErr.IsAuthError() {
		t.Error("code 190 should be an auth error")
	}
}

func TestAPIError_NonJSONBodyKept(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, _, err := client.ListMedia(context.Background(), "ig1", "tok", "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Body != "upstream exploded" {
		t.Errorf("raw body not kept: %q", apiErr.Body)
	}
	if apiErr.IsAuthError() {
		t.Error("502 is not an auth error")
	}
}

func TestCreateReply_PostsToReplyEdge(t *testing.T) {
	var gotPath, gotMethod, gotMessage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotMessage = r.URL.Query().Get("message")
		fmt.Fprint(w, `{"id":"c99"}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	id, err := client.CreateReply(context.Background(), "c7", "hi", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "c99" {
		t.Errorf("expected id 'c99', got %q", id)
	}
	if gotPath != "/"+Version+"/c7/replies" {
		t.Errorf("expected reply edge path, got %q", gotPath)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotMessage != "hi" {
		t.Errorf("expected message 'hi', got %q", gotMessage)
	}
}

func TestGetLinkedAccount_MissingLinkReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"page1"}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	id, err := client.GetLinkedAccount(context.Background(), "page1", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "" {
		t.Errorf("expected empty id for unlinked page, got %q", id)
	}
}

func TestListMedia_ParsesInlineCommentPreview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{
			"id":"m1","caption":"sunset","media_url":"https://cdn/x.jpg","media_type":"IMAGE",
			"timestamp":"2024-05-01T10:00:00+0000","likes_count":3,"comments_count":1,
			"comments":{"data":[{"id":"c1","text":"nice","username":"alice","timestamp":"2024-05-01T11:00:00+0000"}]}
		}]}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	media, _, err := client.ListMedia(context.Background(), "ig1", "tok", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(media) != 1 {
		t.Fatalf("expected 1 media item, got %d", len(media))
	}
	m := media[0]
	if m.MediaType != "IMAGE" || m.LikeCount != 3 || m.CommentsCount != 1 {
		t.Errorf("fields not mapped: %+v", m)
	}
	if m.Comments == nil || len(m.Comments.Data) != 1 || m.Comments.Data[0].ID != "c1" {
		t.Errorf("inline comment preview not parsed: %+v", m.Comments)
	}
}
