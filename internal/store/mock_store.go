package store

import (
	"errors"
	"sync"

	"example.com/socialnet/internal/models"
)

// MockStore simulates Cassandra operations for testing. The mutex matters:
// the friends endpoint fans out concurrent reads.
type MockStore struct {
	mu         sync.Mutex
	Users      map[string]models.User
	EmailIndex map[string]string       // email -> user_id
	Posts      map[string]models.Post
	PostOrder  []string                // preserves insertion order for listings
	ShouldFail bool                    // flag to simulate failures
}

// NewMock initializes a new mock store
func NewMock() *MockStore {
	return &MockStore{
		Users:      make(map[string]models.User),
		EmailIndex: make(map[string]string),
		Posts:      make(map[string]models.Post),
	}
}

func (m *MockStore) Close() {}

func (m *MockStore) CreateUser(user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errors.New("mock: create user failed")
	}
	if _, exists := m.EmailIndex[user.Email]; exists {
		return errors.New("email already registered")
	}
	m.EmailIndex[user.Email] = user.ID
	m.Users[user.ID] = user
	return nil
}

func (m *MockStore) GetUserByID(id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return models.User{}, errors.New("mock: get user failed")
	}
	u, ok := m.Users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *MockStore) GetUserByEmail(email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return models.User{}, errors.New("mock: get user by email failed")
	}
	id, ok := m.EmailIndex[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return m.Users[id], nil
}

func (m *MockStore) UpdateUserFriends(id string, friends []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errors.New("mock: update friends failed")
	}
	u, ok := m.Users[id]
	if !ok {
		return ErrNotFound
	}
	u.Friends = friends
	m.Users[id] = u
	return nil
}

func (m *MockStore) UpdateUserEngagement(id string, viewedProfile, impressions int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errors.New("mock: update engagement failed")
	}
	u, ok := m.Users[id]
	if !ok {
		return ErrNotFound
	}
	u.ViewedProfile = viewedProfile
	u.Impressions = impressions
	m.Users[id] = u
	return nil
}

func (m *MockStore) AddPost(post models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return errors.New("mock: add post failed")
	}
	if _, exists := m.Posts[post.ID]; !exists {
		m.PostOrder = append(m.PostOrder, post.ID)
	}
	m.Posts[post.ID] = post
	return nil
}

func (m *MockStore) GetPost(id string) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return models.Post{}, errors.New("mock: get post failed")
	}
	p, ok := m.Posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	return p, nil
}

func (m *MockStore) GetPosts(authorID string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return nil, errors.New("mock: get posts failed")
	}
	var res []models.Post
	for _, id := range m.PostOrder {
		p := m.Posts[id]
		if authorID == "" || p.UserID == authorID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (m *MockStore) UpdatePostLikes(id string, likes map[string]bool) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return models.Post{}, errors.New("mock: update likes failed")
	}
	p, ok := m.Posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	p.Likes = likes
	m.Posts[id] = p
	return p, nil
}

// ---------------------------------------------
// MockStoreFail always returns errors for negative tests
type MockStoreFail struct{}

func (m *MockStoreFail) Close() {}

func (m *MockStoreFail) CreateUser(user models.User) error {
	return errors.New("mock store create user failed")
}

func (m *MockStoreFail) GetUserByID(id string) (models.User, error) {
	return models.User{}, errors.New("mock store get user failed")
}

func (m *MockStoreFail) GetUserByEmail(email string) (models.User, error) {
	return models.User{}, errors.New("mock store get user by email failed")
}

func (m *MockStoreFail) UpdateUserFriends(id string, friends []string) error {
	return errors.New("mock store update friends failed")
}

func (m *MockStoreFail) UpdateUserEngagement(id string, viewedProfile, impressions int) error {
	return errors.New("mock store update engagement failed")
}

func (m *MockStoreFail) AddPost(post models.Post) error {
	return errors.New("mock store add post failed")
}

func (m *MockStoreFail) GetPost(id string) (models.Post, error) {
	return models.Post{}, errors.New("mock store get post failed")
}

func (m *MockStoreFail) GetPosts(authorID string) ([]models.Post, error) {
	return nil, errors.New("mock store get posts failed")
}

func (m *MockStoreFail) UpdatePostLikes(id string, likes map[string]bool) (models.Post, error) {
	return models.Post{}, errors.New("mock store update likes failed")
}
