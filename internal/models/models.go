package models

import "time"

// User is the canonical profile record. PasswordHash is excluded from JSON
// so it can never leak into a response body.
type User struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	PicturePath   string    `json:"picture_path"`
	Location      string    `json:"location"`
	Occupation    string    `json:"occupation"`
	Friends       []string  `json:"friends"`
	ViewedProfile int       `json:"viewed_profile"`
	Impressions   int       `json:"impressions"`
	Created       time.Time `json:"created"`
}

// HasFriend reports whether id is present in the user's friend list.
func (u User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// Post carries the author's name, location and picture denormalized at
// creation time; later profile edits do not propagate back.
type Post struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	UserPicturePath string          `json:"user_picture_path"`
	PicturePath     string          `json:"picture_path"`
	Likes           map[string]bool `json:"likes"`
	Comments        []string        `json:"comments"`
	Created         time.Time       `json:"created"`
}

// FriendSummary is the projection returned by the friends endpoints:
// no email, no password hash, no engagement counters.
type FriendSummary struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Occupation  string `json:"occupation"`
	Location    string `json:"location"`
	PicturePath string `json:"picture_path"`
}

// Summary builds the friend projection for a user.
func (u User) Summary() FriendSummary {
	return FriendSummary{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Occupation:  u.Occupation,
		Location:    u.Location,
		PicturePath: u.PicturePath,
	}
}

// Engagement event types published to Kafka by the server and consumed by
// the worker.
const (
	EventPostCreated = "post_created"
	EventPostLiked   = "post_liked"
)

// EngagementEvent notifies the worker that a post received attention so it
// can bump the author's impressions counter.
type EngagementEvent struct {
	Type     string    `json:"type"`
	PostID   string    `json:"post_id"`
	AuthorID string    `json:"author_id"`
	ActorID  string    `json:"actor_id,omitempty"`
	Created  time.Time `json:"created"`
}
