package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"example.com/socialnet/internal/models"
	"example.com/socialnet/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
)

// publishEngagement sends an engagement event to Kafka. Publishing is best
// effort: a broker failure is logged and the originating request still
// succeeds.
func (s *Server) publishEngagement(eventType, postID, authorID, actorID string) {
	event := models.EngagementEvent{
		Type:     eventType,
		PostID:   postID,
		AuthorID: authorID,
		ActorID:  actorID,
		Created:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logg.Error("http/posts", "Failed to marshal engagement event", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Type),
		Value: data,
	}
	if err := s.kafkaWriter.WriteMessages(msg); err != nil {
		logg.Error("http/posts", "Failed to publish engagement event", err)
	}
}

// createPostHandler persists a new post and returns the ENTIRE post
// collection, not just the new record. Callers render the refreshed feed
// from the response, so every creation pays for a full listing.
// The author's name, location and picture are copied onto the post at this
// point and go stale if the profile is later edited.
func (s *Server) createPostHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		UserID      string `json:"user_id"`
		Description string `json:"description"`
		PicturePath string `json:"picture_path"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/posts", "Invalid create post request body", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	author, err := s.store.GetUserByID(body.UserID)
	if err != nil {
		logg.Error("http/posts", "Failed to fetch post author", err)
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	post := models.Post{
		ID:              uuid.NewString(),
		UserID:          author.ID,
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		Location:        author.Location,
		Description:     body.Description,
		UserPicturePath: author.PicturePath,
		PicturePath:     body.PicturePath,
		Likes:           map[string]bool{},
		Comments:        []string{},
		Created:         time.Now(),
	}

	if err := s.store.AddPost(post); err != nil {
		logg.Error("http/posts", "Failed to save post", err)
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	s.publishEngagement(models.EventPostCreated, post.ID, author.ID, author.ID)

	posts, err := s.store.GetPosts("")
	if err != nil {
		logg.Error("http/posts", "Failed to list posts after creation", err)
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	logg.Info("http/posts", "Post created successfully (author ID anonymized)")
	writeJSON(w, http.StatusCreated, posts)
}

// getFeedHandler returns every post in store default order. No pagination.
func (s *Server) getFeedHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.GetPosts("")
	if err != nil {
		logg.Error("http/posts", "Failed to retrieve feed", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// getUserPostsHandler returns the posts of a single author.
func (s *Server) getUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	posts, err := s.store.GetPosts(userID)
	if err != nil {
		logg.Error("http/posts", "Failed to retrieve user posts", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// likePostHandler flips the viewer's like on a post: present -> removed,
// absent -> set. The whole like map is read, mutated in memory and written
// back, so concurrent toggles on the same post are last-write-wins.
func (s *Server) likePostHandler(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	type req struct {
		UserID string `json:"user_id"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/posts", "Invalid like request body", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	post, err := s.store.GetPost(postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		logg.Error("http/posts", "Failed to fetch post for like toggle", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if post.Likes == nil {
		post.Likes = map[string]bool{}
	}

	liked := post.Likes[body.UserID]
	if liked {
		delete(post.Likes, body.UserID)
	} else {
		post.Likes[body.UserID] = true
	}

	updated, err := s.store.UpdatePostLikes(postID, post.Likes)
	if err != nil {
		logg.Error("http/posts", "Failed to update post likes", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !liked {
		s.publishEngagement(models.EventPostLiked, post.ID, post.UserID, body.UserID)
	}

	logg.Info("http/posts", "Like toggled (post and user IDs anonymized)")
	writeJSON(w, http.StatusOK, updated)
}
