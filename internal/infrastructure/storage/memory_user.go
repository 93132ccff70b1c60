package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
)

type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*entity.User
	nextID uint
}

// NewMemoryUserRepository in-memory user repository yaratish
func NewMemoryUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		users:  make(map[int64]*entity.User),
		nextID: 1,
	}
}

// Init memory rejimda hech narsa talab qilmaydi
func (m *memoryUserRepository) Init(ctx context.Context) error {
	return nil
}

// Upsert profilni coalesce-on-write tartibida yangilash
func (m *memoryUserRepository) Upsert(ctx context.Context, tgID int64, patch entity.UserPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, exists := m.users[tgID]
	if !exists {
		row = &entity.User{ID: m.nextID, TgID: tgID}
		m.users[tgID] = row
		m.nextID++
	}

	if patch.Language != nil {
		row.Language = cloneString(patch.Language)
	}
	if patch.FirstName != nil {
		row.FirstName = cloneString(patch.FirstName)
	}
	if patch.LastName != nil {
		row.LastName = cloneString(patch.LastName)
	}
	if patch.Phone != nil {
		row.Phone = cloneString(patch.Phone)
	}

	return nil
}

// Get profilni olish; topilmasa (nil, nil)
func (m *memoryUserRepository) Get(ctx context.Context, tgID int64) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, exists := m.users[tgID]
	if !exists {
		return nil, nil
	}

	return copyUser(row), nil
}

// List barcha profillarni ID tartibida olish
func (m *memoryUserRepository) List(ctx context.Context) ([]entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.User, 0, len(m.users))
	for _, row := range m.users {
		out = append(out, *copyUser(row))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// copyUser tashqariga ichki pointerlarni chiqarmaslik uchun nusxa
func copyUser(u *entity.User) *entity.User {
	c := entity.User{ID: u.ID, TgID: u.TgID}
	c.Language = cloneString(u.Language)
	c.FirstName = cloneString(u.FirstName)
	c.LastName = cloneString(u.LastName)
	c.Phone = cloneString(u.Phone)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
