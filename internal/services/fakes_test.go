package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/pointboard/internal/models"
	"github.com/arzan03/pointboard/internal/repository"
)

// memoryUsers is an in-memory repository.UserRepository. Lookups hand out
// copies so mutations only land through Save.
type memoryUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User

	finds, saves, deletes, creates int

	findErr, saveErr, deleteErr, listErr error
}

func newMemoryUsers(users ...models.User) *memoryUsers {
	m := &memoryUsers{users: make(map[primitive.ObjectID]models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryUsers) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finds + m.saves + m.deletes + m.creates
}

func (m *memoryUsers) get(id primitive.ObjectID) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	u, ok := m.users[objID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) Save(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryUsers) ListByRole(_ context.Context, role string) ([]models.PointsEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.PointsEntry, 0)
	for _, u := range m.users {
		if u.UserRole == role {
			out = append(out, models.PointsEntry{ID: u.ID, Username: u.Username, Points: u.Points})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out, nil
}

func (m *memoryUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

type memoryLeaderboard struct {
	entries     []models.PointsEntry
	cached      bool
	sets        int
	invalidated int
}

func (c *memoryLeaderboard) Get(context.Context) ([]models.PointsEntry, bool) {
	return c.entries, c.cached
}

func (c *memoryLeaderboard) Set(_ context.Context, entries []models.PointsEntry) {
	c.entries, c.cached = entries, true
	c.sets++
}

func (c *memoryLeaderboard) Invalidate(context.Context) {
	c.entries, c.cached = nil, false
	c.invalidated++
}

type memoryArchive struct {
	stored []models.User
	err    error
}

func (a *memoryArchive) Store(_ context.Context, user *models.User) error {
	if a.err != nil {
		return a.err
	}
	a.stored = append(a.stored, *user)
	return nil
}
