package server

import (
	"net/http"
	"testing"
	"time"

	appkafka "example.com/socialnet/internal/broker"
	"example.com/socialnet/internal/models"
)

// createPostHelper posts a new post and returns the decoded full listing.
func createPostHelper(t *testing.T, url, token, authorID, description string) []models.Post {
	t.Helper()

	body := map[string]any{
		"user_id":      authorID,
		"description":  description,
		"picture_path": "pic.jpg",
	}
	resp := sendJSONRequest(t, http.MethodPost, url+"/posts", body, token, http.StatusCreated)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	return posts
}

// created post carries the author's name, location and picture copied at
// creation time
func TestCreatePost_DenormalizesAuthor(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)

	author := models.User{
		ID:          "u1",
		FirstName:   "Nur",
		LastName:    "Aliyev",
		Email:       "nur@x.com",
		Location:    "Almaty",
		PicturePath: "nur.jpg",
	}
	token := seedUser(t, s, mockStore, author)

	posts := createPostHelper(t, ts.URL, token, "u1", "hello")

	if len(posts) != 1 {
		t.Fatalf("expected 1 post in listing, got %d", len(posts))
	}
	p := posts[0]
	if p.Description != "hello" || p.UserID != "u1" {
		t.Fatalf("unexpected post: %+v", p)
	}
	if p.FirstName != "Nur" || p.LastName != "Aliyev" || p.Location != "Almaty" || p.UserPicturePath != "nur.jpg" {
		t.Fatalf("author fields not denormalized: %+v", p)
	}
	if len(p.Likes) != 0 || len(p.Comments) != 0 {
		t.Fatalf("new post should start with empty likes and comments: %+v", p)
	}
}

// creation responds with the ENTIRE collection, not just the new post
func TestCreatePost_ReturnsFullCollection(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)

	token := seedUser(t, s, mockStore, models.User{ID: "u1", Email: "u1@x.com"})

	createPostHelper(t, ts.URL, token, "u1", "first")
	posts := createPostHelper(t, ts.URL, token, "u1", "second")

	if len(posts) != 2 {
		t.Fatalf("expected full collection of 2 posts, got %d", len(posts))
	}
}

// unknown author fails post creation with 409
func TestCreatePost_UnknownAuthor(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)

	token := seedUser(t, s, mockStore, models.User{ID: "u1", Email: "u1@x.com"})

	body := map[string]any{"user_id": "ghost", "description": "x"}
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/posts", body, token, http.StatusConflict)
	resp.Body.Close()
}

// getUserPosts returns exactly the feed subset belonging to that author
func TestGetUserPosts_SubsetOfFeed(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)

	token := seedUser(t, s, mockStore, models.User{ID: "u1", Email: "u1@x.com"})
	for i, authorID := range []string{"u1", "u2", "u1", "u3", "u1"} {
		post := models.Post{
			ID:      "p" + string(rune('0'+i)),
			UserID:  authorID,
			Likes:   map[string]bool{},
			Created: time.Now(),
		}
		if err := mockStore.AddPost(post); err != nil {
			t.Fatalf("seed post failed: %v", err)
		}
	}

	resp := sendJSONRequest(t, http.MethodGet, ts.URL+"/posts", nil, token, http.StatusOK)
	var feed []models.Post
	decodeBody(t, resp, &feed)

	resp = sendJSONRequest(t, http.MethodGet, ts.URL+"/posts/user/u1", nil, token, http.StatusOK)
	var userPosts []models.Post
	decodeBody(t, resp, &userPosts)

	var expected []models.Post
	for _, p := range feed {
		if p.UserID == "u1" {
			expected = append(expected, p)
		}
	}
	if len(userPosts) != len(expected) {
		t.Fatalf("expected %d posts for u1, got %d", len(expected), len(userPosts))
	}
	for i := range expected {
		if userPosts[i].ID != expected[i].ID {
			t.Fatalf("user posts diverge from feed subset at %d: %s vs %s", i, userPosts[i].ID, expected[i].ID)
		}
	}
}

// toggling twice returns the like-state to its original value
func TestLikePost_Involution(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)

	token := seedUser(t, s, mockStore, models.User{ID: "author", Email: "a@x.com"})
	if err := mockStore.AddPost(models.Post{ID: "p1", UserID: "author", Likes: map[string]bool{}}); err != nil {
		t.Fatalf("seed post failed: %v", err)
	}

	body := map[string]any{"user_id": "viewer"}

	resp := sendJSONRequest(t, http.MethodPatch, ts.URL+"/posts/p1/like", body, token, http.StatusOK)
	var liked models.Post
	decodeBody(t, resp, &liked)
	if !liked.Likes["viewer"] {
		t.Fatalf("expected viewer like to be set: %+v", liked.Likes)
	}

	resp = sendJSONRequest(t, http.MethodPatch, ts.URL+"/posts/p1/like", body, token, http.StatusOK)
	var unliked models.Post
	decodeBody(t, resp, &unliked)
	if _, present := unliked.Likes["viewer"]; present {
		t.Fatalf("expected viewer like to be removed: %+v", unliked.Likes)
	}
}

func TestLikePost_MissingPost(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)

	token := seedUser(t, s, mockStore, models.User{ID: "u1", Email: "u1@x.com"})

	body := map[string]any{"user_id": "u1"}
	resp := sendJSONRequest(t, http.MethodPatch, ts.URL+"/posts/ghost/like", body, token, http.StatusNotFound)
	resp.Body.Close()
}

// creating a post publishes an engagement event; the mock applies it to the
// author's impressions immediately
func TestCreatePost_PublishesEngagementEvent(t *testing.T) {
	s, mockStore, mockKafka, ts := setupTestServer(t)

	author := models.User{ID: "u1", Email: "u1@x.com", Impressions: 7}
	token := seedUser(t, s, mockStore, author)

	createPostHelper(t, ts.URL, token, "u1", "hello")

	if len(mockKafka.WrittenMessages) != 1 {
		t.Fatalf("expected 1 engagement event, got %d", len(mockKafka.WrittenMessages))
	}
	updated, err := mockStore.GetUserByID("u1")
	if err != nil {
		t.Fatalf("author missing: %v", err)
	}
	if updated.Impressions != 8 {
		t.Fatalf("expected impressions 8, got %d", updated.Impressions)
	}
}

// an engagement publish failure must not fail the originating request
func TestCreatePost_KafkaFailureIsBestEffort(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	s.kafkaWriter = &appkafka.MockKafkaFail{}

	token := seedUser(t, s, mockStore, models.User{ID: "u1", Email: "u1@x.com"})

	posts := createPostHelper(t, ts.URL, token, "u1", "still works")
	if len(posts) != 1 {
		t.Fatalf("expected creation to succeed despite broker failure")
	}
}
