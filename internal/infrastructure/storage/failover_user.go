package storage

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
)

// failoverUserRepository PostgreSQL ustidagi dekorator: birinchi xatolikda
// butun process uchun in-memory rejimga o'tadi (orqaga qaytish yo'q).
// Muvaffaqiyatsiz bo'lgan operatsiya memory storega qayta yuboriladi,
// shuning uchun chaqiruvchi xatolikni sezmaydi.
type failoverUserRepository struct {
	primary  repository.UserRepository
	fallback repository.UserRepository
	degraded atomic.Bool
	log      *zap.Logger
}

// NewFailoverUserRepository dsn bo'yicha PostgreSQL ga ulanadi; ulanish yoki
// konfiguratsiya bo'lmasa darhol memory rejimda ishlaydi
func NewFailoverUserRepository(dsn string, log *zap.Logger) repository.UserRepository {
	f := &failoverUserRepository{
		fallback: NewMemoryUserRepository(),
		log:      log,
	}

	if dsn == "" {
		f.degrade("DATABASE_URL/PG* envs not set", nil)
		return f
	}

	primary, err := NewPostgresUserRepository(dsn)
	if err != nil {
		f.degrade("postgres connect failed", err)
		return f
	}

	f.primary = primary
	return f
}

// newFailoverUserRepository testlar uchun: primary va fallback ni bevosita berish
func newFailoverUserRepository(primary, fallback repository.UserRepository, log *zap.Logger) *failoverUserRepository {
	return &failoverUserRepository{primary: primary, fallback: fallback, log: log}
}

// degrade memory rejimga o'tish; log faqat birinchi o'tishda yoziladi
func (f *failoverUserRepository) degrade(reason string, err error) {
	if f.degraded.CompareAndSwap(false, true) {
		f.log.Error("switching to in-memory user store",
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
}

// Init sxemani tayyorlash; xatolik fatal emas, faqat rejimni almashtiradi
func (f *failoverUserRepository) Init(ctx context.Context) error {
	if f.degraded.Load() {
		return f.fallback.Init(ctx)
	}
	if err := f.primary.Init(ctx); err != nil {
		f.degrade("postgres init failed", err)
		return f.fallback.Init(ctx)
	}
	return nil
}

// Upsert profilni yangilash; primary xatolikda o'sha operatsiya memory da takrorlanadi
func (f *failoverUserRepository) Upsert(ctx context.Context, tgID int64, patch entity.UserPatch) error {
	if !f.degraded.Load() {
		err := f.primary.Upsert(ctx, tgID, patch)
		if err == nil {
			return nil
		}
		f.degrade("postgres upsert failed", err)
	}
	return f.fallback.Upsert(ctx, tgID, patch)
}

// Get profilni olish; primary xatolikda memory dan o'qiladi
func (f *failoverUserRepository) Get(ctx context.Context, tgID int64) (*entity.User, error) {
	if !f.degraded.Load() {
		row, err := f.primary.Get(ctx, tgID)
		if err == nil {
			return row, nil
		}
		f.degrade("postgres read failed", err)
	}
	return f.fallback.Get(ctx, tgID)
}

// List barcha profillarni olish
func (f *failoverUserRepository) List(ctx context.Context) ([]entity.User, error) {
	if !f.degraded.Load() {
		rows, err := f.primary.List(ctx)
		if err == nil {
			return rows, nil
		}
		f.degrade("postgres list failed", err)
	}
	return f.fallback.List(ctx)
}
