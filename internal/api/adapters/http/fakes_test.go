package http_test

import (
	"context"
	"slices"
	"sort"
	"sync"

	"geoprofiles/internal/api/domain/entities"
	"geoprofiles/internal/api/ports/repositories"
)

// memoryUsers повторяет ограничения уникальности таблицы users.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]entities.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: make(map[int64]entities.User)}
}

func (m *memoryUsers) conflict(u *entities.User) error {
	for id, other := range m.byID {
		if id == u.ID {
			continue
		}
		switch {
		case other.Login == u.Login:
			return repositories.ErrLoginTaken
		case other.Email == u.Email:
			return repositories.ErrEmailTaken
		case other.Phone == u.Phone:
			return repositories.ErrPhoneTaken
		}
	}
	return nil
}

func (m *memoryUsers) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.conflict(user); err != nil {
		return nil, err
	}
	m.nextID++
	stored := *user
	stored.ID = m.nextID
	m.byID[stored.ID] = stored
	return &stored, nil
}

func (m *memoryUsers) find(match func(entities.User) bool) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id int64) (*entities.User, error) {
	return m.find(func(u entities.User) bool { return u.ID == id })
}

func (m *memoryUsers) FindByLogin(_ context.Context, login string) (*entities.User, error) {
	return m.find(func(u entities.User) bool { return u.Login == login })
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	return m.find(func(u entities.User) bool { return u.Email == email })
}

func (m *memoryUsers) FindByPhone(_ context.Context, phone string) (*entities.User, error) {
	return m.find(func(u entities.User) bool { return u.Phone == phone })
}

func (m *memoryUsers) Update(_ context.Context, user *entities.User) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.byID[user.ID]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	if err := m.conflict(user); err != nil {
		return nil, err
	}
	user.PasswordHash = current.PasswordHash
	user.LastPasswordSet = current.LastPasswordSet
	m.byID[user.ID] = *user
	stored := *user
	return &stored, nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id int64, hash string, setAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repositories.ErrRecordNotFound
	}
	u.PasswordHash = hash
	u.LastPasswordSet = max(u.LastPasswordSet, setAt)
	m.byID[id] = u
	return nil
}

type memoryCountries []entities.Country

func (m memoryCountries) List(_ context.Context, regions []string) ([]entities.Country, error) {
	out := []entities.Country{}
	for _, c := range m {
		if len(regions) == 0 || slices.Contains(regions, c.Region) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alpha2 < out[j].Alpha2 })
	return out, nil
}

func (m memoryCountries) FindByAlpha2(_ context.Context, alpha2 string) (*entities.Country, error) {
	for _, c := range m {
		if c.Alpha2 == alpha2 {
			found := c
			return &found, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

var catalog = memoryCountries{
	{Name: "Russian Federation", Alpha2: "RU", Alpha3: "RUS", Region: "Europe"},
	{Name: "France", Alpha2: "FR", Alpha3: "FRA", Region: "Europe"},
	{Name: "Japan", Alpha2: "JP", Alpha3: "JPN", Region: "Asia"},
}
