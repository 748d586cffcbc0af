package server

import (
	"errors"
	"net/http"
	"sync"

	"example.com/socialnet/internal/models"
	"example.com/socialnet/internal/store"
	"github.com/gorilla/mux"
)

// friendSummaries fetches every listed friend concurrently and projects each
// into a summary. The slot order follows the friend list; a friend id that no
// longer resolves leaves a null entry rather than being filtered out, so the
// client sees that a slot existed.
func (s *Server) friendSummaries(user models.User) []*models.FriendSummary {
	out := make([]*models.FriendSummary, len(user.Friends))

	var wg sync.WaitGroup
	for i, friendID := range user.Friends {
		wg.Add(1)
		go func(i int, friendID string) {
			defer wg.Done()
			friend, err := s.store.GetUserByID(friendID)
			if err != nil {
				return
			}
			summary := friend.Summary()
			out[i] = &summary
		}(i, friendID)
	}
	wg.Wait()

	return out
}

// removeID filters target out of ids, comparing against the value captured
// before iteration.
func removeID(ids []string, target string) []string {
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != target {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// getUserHandler returns a full profile (minus the password digest) or 404.
func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := s.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		logg.Error("http/users", "Failed to fetch user", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// getUserFriendsHandler returns the user's friend summaries in list order.
func (s *Server) getUserFriendsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := s.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		logg.Error("http/users", "Failed to fetch user for friends listing", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.friendSummaries(user))
}

// addRemoveFriendHandler toggles the relationship between two users on both
// sides: present in the caller's list -> removed from both, absent -> added
// to both. The two saves are separate writes with no transaction, so a crash
// in between leaves the relation asymmetric. Responds with the caller's
// refreshed friend summaries.
func (s *Server) addRemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]
	friendID := vars["friendId"]

	if userID == friendID {
		writeError(w, http.StatusBadRequest, "cannot friend yourself")
		return
	}

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		logg.Error("http/users", "Failed to fetch user for friend toggle", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	friend, err := s.store.GetUserByID(friendID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "friend not found")
			return
		}
		logg.Error("http/users", "Failed to fetch friend for friend toggle", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if user.HasFriend(friendID) {
		user.Friends = removeID(user.Friends, friendID)
		friend.Friends = removeID(friend.Friends, userID)
	} else {
		user.Friends = append(user.Friends, friendID)
		friend.Friends = append(friend.Friends, userID)
	}

	if err := s.store.UpdateUserFriends(user.ID, user.Friends); err != nil {
		logg.Error("http/users", "Failed to save user's friend list", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.UpdateUserFriends(friend.ID, friend.Friends); err != nil {
		logg.Error("http/users", "Failed to save friend's friend list", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logg.Info("http/users", "Friend relationship toggled (user IDs anonymized)")
	writeJSON(w, http.StatusOK, s.friendSummaries(user))
}
