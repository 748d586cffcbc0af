package store

import (
	"example.com/socialnet/internal/models"
	"github.com/gocql/gocql"
)

// --- Post operations ---

func (s *Store) AddPost(post models.Post) error {
	if err := s.Session.Query(`
		INSERT INTO posts (post_id, user_id, first_name, last_name, location,
			description, user_picture_path, picture_path, likes, comments, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.UserID, post.FirstName, post.LastName, post.Location,
		post.Description, post.UserPicturePath, post.PicturePath,
		post.Likes, post.Comments, post.Created,
	).Exec(); err != nil {
		logg.Error("store", "Failed to add post", err)
		return err
	}

	logg.Info("store", "Post added to posts table (post content anonymized)")
	return nil
}

// GetPost returns a single post or ErrNotFound.
func (s *Store) GetPost(id string) (models.Post, error) {
	var p models.Post
	err := s.Session.Query(`
		SELECT post_id, user_id, first_name, last_name, location,
			description, user_picture_path, picture_path, likes, comments, created_at
		FROM posts WHERE post_id = ?`,
		id,
	).Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Location,
		&p.Description, &p.UserPicturePath, &p.PicturePath,
		&p.Likes, &p.Comments, &p.Created)
	if err != nil {
		if err == gocql.ErrNotFound {
			return models.Post{}, ErrNotFound
		}
		logg.Error("store", "Failed to query post by id", err)
		return models.Post{}, err
	}
	return p, nil
}

// GetPosts is the shared finder behind the feed and per-author listings.
// An empty authorID returns the whole collection in store default order;
// otherwise results are narrowed to one author. No pagination.
func (s *Store) GetPosts(authorID string) ([]models.Post, error) {
	stmt := `
		SELECT post_id, user_id, first_name, last_name, location,
			description, user_picture_path, picture_path, likes, comments, created_at
		FROM posts`
	var values []interface{}
	if authorID != "" {
		stmt += ` WHERE user_id = ? ALLOW FILTERING`
		values = append(values, authorID)
	}

	iter := s.Session.Query(stmt, values...).Iter()

	var res []models.Post
	var p models.Post
	for iter.Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Location,
		&p.Description, &p.UserPicturePath, &p.PicturePath,
		&p.Likes, &p.Comments, &p.Created) {
		res = append(res, p)
		p = models.Post{}
	}

	if err := iter.Close(); err != nil {
		logg.Error("store", "Failed to retrieve posts", err)
		return nil, err
	}

	logg.Info("store", "Posts retrieved successfully (IDs and content anonymized)")
	return res, nil
}

// UpdatePostLikes overwrites the whole like map and returns the refreshed
// post. Last write wins on the map under concurrent toggles.
func (s *Store) UpdatePostLikes(id string, likes map[string]bool) (models.Post, error) {
	if err := s.Session.Query(
		`UPDATE posts SET likes = ? WHERE post_id = ?`,
		likes, id,
	).Exec(); err != nil {
		logg.Error("store", "Failed to update post likes", err)
		return models.Post{}, err
	}

	return s.GetPost(id)
}
