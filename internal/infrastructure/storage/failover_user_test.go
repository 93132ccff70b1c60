package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
)

// flakyUserRepository buyruq bo'yicha xato qaytaradigan stub
type flakyUserRepository struct {
	repository.UserRepository
	failNext bool
	calls    int
}

func (s *flakyUserRepository) Upsert(ctx context.Context, tgID int64, patch entity.UserPatch) error {
	s.calls++
	if s.failNext {
		return errors.New("connection refused")
	}
	return s.UserRepository.Upsert(ctx, tgID, patch)
}

func (s *flakyUserRepository) Get(ctx context.Context, tgID int64) (*entity.User, error) {
	s.calls++
	if s.failNext {
		return nil, errors.New("connection refused")
	}
	return s.UserRepository.Get(ctx, tgID)
}

func TestFailoverReplaysFailedOperation(t *testing.T) {
	ctx := context.Background()
	primary := &flakyUserRepository{UserRepository: NewMemoryUserRepository(), failNext: true}
	f := newFailoverUserRepository(primary, NewMemoryUserRepository(), zap.NewNop())

	// primary yiqiladi, lekin chaqiruvchi xatolik ko'rmaydi
	err := f.Upsert(ctx, 42, entity.UserPatch{Language: entity.Str("uz")})
	require.NoError(t, err)

	// yozuv fallback da mavjud
	row, err := f.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "uz", *row.Language)
}

func TestFailoverIsOneWay(t *testing.T) {
	ctx := context.Background()
	primary := &flakyUserRepository{UserRepository: NewMemoryUserRepository(), failNext: true}
	f := newFailoverUserRepository(primary, NewMemoryUserRepository(), zap.NewNop())

	require.NoError(t, f.Upsert(ctx, 1, entity.UserPatch{Language: entity.Str("ru")}))

	// primary tuzalgan bo'lsa ham unga qaytilmaydi
	primary.failNext = false
	callsAfterDegrade := primary.calls

	require.NoError(t, f.Upsert(ctx, 1, entity.UserPatch{FirstName: entity.Str("Olim")}))
	row, err := f.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, callsAfterDegrade, primary.calls)
	assert.Equal(t, "ru", *row.Language)
	assert.Equal(t, "Olim", *row.FirstName)
}

func TestFailoverHealthyPrimary(t *testing.T) {
	ctx := context.Background()
	primary := &flakyUserRepository{UserRepository: NewMemoryUserRepository()}
	fallback := NewMemoryUserRepository()
	f := newFailoverUserRepository(primary, fallback, zap.NewNop())

	require.NoError(t, f.Upsert(ctx, 9, entity.UserPatch{Phone: entity.Str("+998935551122")}))

	row, err := f.Get(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "+998935551122", *row.Phone)

	// fallback ga hech narsa yozilmagan
	shadow, err := fallback.Get(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, shadow)
}

func TestFailoverWithoutDSNStartsDegraded(t *testing.T) {
	ctx := context.Background()
	f := NewFailoverUserRepository("", zap.NewNop())

	require.NoError(t, f.Init(ctx))
	require.NoError(t, f.Upsert(ctx, 5, entity.UserPatch{Language: entity.Str("en")}))

	row, err := f.Get(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "en", *row.Language)
}
