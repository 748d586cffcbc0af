package server

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"example.com/socialnet/internal/auth"
	"example.com/socialnet/internal/models"
	"example.com/socialnet/internal/store"
	"github.com/google/uuid"
)

// registerHandler creates a new profile.
// Expects JSON body with first_name, last_name, email, password and the
// optional profile fields. Returns 201 with the stored record; the password
// digest never appears in the response.
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		FirstName   string   `json:"first_name"`
		LastName    string   `json:"last_name"`
		Email       string   `json:"email"`
		Password    string   `json:"password"`
		PicturePath string   `json:"picture_path"`
		Friends     []string `json:"friends"`
		Location    string   `json:"location"`
		Occupation  string   `json:"occupation"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/auth", "Invalid register request body", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if body.Email == "" || body.Password == "" {
		logg.Info("http/auth", "Register attempt with missing email or password")
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	digest, err := auth.HashSecret(body.Password)
	if err != nil {
		logg.Error("http/auth", "Failed to hash password", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Email:        body.Email,
		PasswordHash: digest,
		PicturePath:  body.PicturePath,
		Friends:      body.Friends,
		Location:     body.Location,
		Occupation:   body.Occupation,
		// Engagement counters start at an arbitrary value in [0, 10000).
		ViewedProfile: rand.IntN(10000),
		Impressions:   rand.IntN(10000),
		Created:       time.Now(),
	}

	if err := s.store.CreateUser(user); err != nil {
		logg.Error("http/auth", "Failed to create user", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logg.Info("http/auth", "User registered successfully (email anonymized)")
	writeJSON(w, http.StatusCreated, user)
}

// loginHandler verifies credentials and issues a signed token.
// A missing account and a wrong password yield distinguished messages, both
// as client errors.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/auth", "Invalid login request body", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	user, err := s.store.GetUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logg.Info("http/auth", "Login attempt for unknown account")
			writeError(w, http.StatusBadRequest, "user does not exist.")
			return
		}
		logg.Error("http/auth", "Failed to look up user for login", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !auth.CheckSecret(body.Password, user.PasswordHash) {
		logg.Info("http/auth", "Login attempt with wrong password")
		writeError(w, http.StatusBadRequest, "invalid credentials.")
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		logg.Error("http/auth", "Failed to sign token", err)
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	logg.Info("http/auth", "Login successful (email anonymized)")
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}
