package store

import (
	"errors"

	"example.com/socialnet/internal/models"
	"github.com/gocql/gocql"
)

// --- User operations ---

// CreateUser persists a new profile. Email uniqueness is enforced by a CAS
// insert into the lookup table; a duplicate registration surfaces as an error.
func (s *Store) CreateUser(user models.User) error {
	result := make(map[string]interface{})
	applied, err := s.Session.Query(`
		INSERT INTO users_by_email (email, user_id)
		VALUES (?, ?) IF NOT EXISTS`,
		user.Email, user.ID,
	).MapScanCAS(result)
	if err != nil {
		logg.Error("store", "Failed to create email entry", err)
		return err
	}
	if !applied {
		return errors.New("email already registered")
	}

	err = s.Session.Query(`
		INSERT INTO users (user_id, first_name, last_name, email, password_hash,
			picture_path, location, occupation, friends, viewed_profile, impressions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.PicturePath, user.Location, user.Occupation, user.Friends,
		user.ViewedProfile, user.Impressions, user.Created,
	).Exec()
	if err != nil {
		logg.Error("store", "Failed to create user in main table", err)
		return err
	}

	logg.Info("store", "User created successfully (email anonymized)")
	return nil
}

// GetUserByID returns the full profile or ErrNotFound.
func (s *Store) GetUserByID(id string) (models.User, error) {
	var u models.User
	err := s.Session.Query(`
		SELECT user_id, first_name, last_name, email, password_hash,
			picture_path, location, occupation, friends, viewed_profile, impressions, created_at
		FROM users WHERE user_id = ?`,
		id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.PicturePath, &u.Location, &u.Occupation, &u.Friends,
		&u.ViewedProfile, &u.Impressions, &u.Created)
	if err != nil {
		if err == gocql.ErrNotFound {
			return models.User{}, ErrNotFound
		}
		logg.Error("store", "Failed to query user by id", err)
		return models.User{}, err
	}
	return u, nil
}

// GetUserByEmail resolves the email lookup table and fetches the profile.
func (s *Store) GetUserByEmail(email string) (models.User, error) {
	var id string
	err := s.Session.Query(
		`SELECT user_id FROM users_by_email WHERE email = ?`,
		email,
	).Scan(&id)
	if err != nil {
		if err == gocql.ErrNotFound {
			return models.User{}, ErrNotFound
		}
		logg.Error("store", "Failed to query user by email", err)
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// UpdateUserFriends overwrites the user's friend list. Friend toggles update
// two records with two separate writes; there is no cross-record transaction.
func (s *Store) UpdateUserFriends(id string, friends []string) error {
	if err := s.Session.Query(
		`UPDATE users SET friends = ? WHERE user_id = ?`,
		friends, id,
	).Exec(); err != nil {
		logg.Error("store", "Failed to update friend list", err)
		return err
	}

	logg.Info("store", "Friend list updated (user ID anonymized)")
	return nil
}

// UpdateUserEngagement overwrites both engagement counters.
func (s *Store) UpdateUserEngagement(id string, viewedProfile, impressions int) error {
	if err := s.Session.Query(
		`UPDATE users SET viewed_profile = ?, impressions = ? WHERE user_id = ?`,
		viewedProfile, impressions, id,
	).Exec(); err != nil {
		logg.Error("store", "Failed to update engagement counters", err)
		return err
	}
	return nil
}
