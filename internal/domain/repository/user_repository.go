package repository

import (
	"context"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
)

// UserRepository foydalanuvchi profillari bilan ishlash uchun interface
type UserRepository interface {
	// Init sxemani tayyorlash (idempotent)
	Init(ctx context.Context) error

	// Upsert profilni coalesce-on-write tartibida yangilash:
	// patch dagi nil bo'lmagan maydonlar yoziladi, qolganlari saqlanadi
	Upsert(ctx context.Context, tgID int64, patch entity.UserPatch) error

	// Get profilni olish; topilmasa (nil, nil)
	Get(ctx context.Context, tgID int64) (*entity.User, error)

	// List barcha profillarni olish (export uchun)
	List(ctx context.Context) ([]entity.User, error)
}
