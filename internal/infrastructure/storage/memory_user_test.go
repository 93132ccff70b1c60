package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
)

func TestMemoryUserUpsertCoalesce(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Upsert(ctx, 100, entity.UserPatch{Language: entity.Str("uz")}))
	require.NoError(t, repo.Upsert(ctx, 100, entity.UserPatch{FirstName: entity.Str("Aziz")}))
	require.NoError(t, repo.Upsert(ctx, 100, entity.UserPatch{LastName: entity.Str("Karimov")}))
	require.NoError(t, repo.Upsert(ctx, 100, entity.UserPatch{Phone: entity.Str("+998901234567")}))

	row, err := repo.Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, "uz", *row.Language)
	assert.Equal(t, "Aziz", *row.FirstName)
	assert.Equal(t, "Karimov", *row.LastName)
	assert.Equal(t, "+998901234567", *row.Phone)
	assert.True(t, row.IsRegistered())

	// nil maydonlar saqlangan qiymatlarni o'zgartirmaydi
	require.NoError(t, repo.Upsert(ctx, 100, entity.UserPatch{Phone: entity.Str("+998900000000")}))
	row, err = repo.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "Aziz", *row.FirstName)
	assert.Equal(t, "+998900000000", *row.Phone)
}

func TestMemoryUserGetMissing(t *testing.T) {
	repo := NewMemoryUserRepository()

	row, err := repo.Get(context.Background(), 555)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestMemoryUserGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Upsert(ctx, 7, entity.UserPatch{FirstName: entity.Str("Dilnoza")}))

	row, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	*row.FirstName = "buzilgan"

	fresh, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Dilnoza", *fresh.FirstName)
}

func TestMemoryUserListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Upsert(ctx, 300, entity.UserPatch{Language: entity.Str("ru")}))
	require.NoError(t, repo.Upsert(ctx, 100, entity.UserPatch{Language: entity.Str("uz")}))
	require.NoError(t, repo.Upsert(ctx, 200, entity.UserPatch{Language: entity.Str("en")}))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int64(300), rows[0].TgID)
	assert.Equal(t, int64(100), rows[1].TgID)
	assert.Equal(t, int64(200), rows[2].TgID)
}
