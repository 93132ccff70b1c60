package usecase

import (
	"context"
	"strings"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
	"github.com/yourusername/telegram-places-bot/internal/locale"
)

// UserUseCase foydalanuvchi profili bilan bog'liq business logic
type UserUseCase interface {
	// EnsureUser identity uchun yozuv mavjudligini kafolatlash
	EnsureUser(ctx context.Context, tgID int64) error

	// Profile profilni olish; topilmasa nil
	Profile(ctx context.Context, tgID int64) (*entity.User, error)

	// Language foydalanuvchi tili; o'rnatilmagan bo'lsa default
	Language(ctx context.Context, tgID int64) string

	SetLanguage(ctx context.Context, tgID int64, lang string) error
	SetFirstName(ctx context.Context, tgID int64, name string) error
	SetLastName(ctx context.Context, tgID int64, name string) error
	SetPhone(ctx context.Context, tgID int64, phone string) error

	// SetFullName to'liq ismni ism/familiyaga ajratib saqlash.
	// Bitta so'z kelsa faqat ism yangilanadi, familiya saqlanib qoladi.
	SetFullName(ctx context.Context, tgID int64, full string) error
}

type userUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase yangi UserUseCase yaratish
func NewUserUseCase(repo repository.UserRepository) UserUseCase {
	return &userUseCase{repo: repo}
}

// EnsureUser bo'sh yozuv yaratish (mavjud bo'lsa hech narsa o'zgarmaydi)
func (u *userUseCase) EnsureUser(ctx context.Context, tgID int64) error {
	return u.repo.Upsert(ctx, tgID, entity.UserPatch{})
}

// Profile profilni olish
func (u *userUseCase) Profile(ctx context.Context, tgID int64) (*entity.User, error) {
	return u.repo.Get(ctx, tgID)
}

// Language foydalanuvchi tilini olish; topilmasa en
func (u *userUseCase) Language(ctx context.Context, tgID int64) string {
	row, err := u.repo.Get(ctx, tgID)
	if err != nil || row == nil || row.Language == nil {
		return locale.DefaultLanguage
	}
	return *row.Language
}

func (u *userUseCase) SetLanguage(ctx context.Context, tgID int64, lang string) error {
	return u.repo.Upsert(ctx, tgID, entity.UserPatch{Language: entity.Str(lang)})
}

func (u *userUseCase) SetFirstName(ctx context.Context, tgID int64, name string) error {
	return u.repo.Upsert(ctx, tgID, entity.UserPatch{FirstName: entity.Str(strings.TrimSpace(name))})
}

func (u *userUseCase) SetLastName(ctx context.Context, tgID int64, name string) error {
	return u.repo.Upsert(ctx, tgID, entity.UserPatch{LastName: entity.Str(strings.TrimSpace(name))})
}

func (u *userUseCase) SetPhone(ctx context.Context, tgID int64, phone string) error {
	return u.repo.Upsert(ctx, tgID, entity.UserPatch{Phone: entity.Str(strings.TrimSpace(phone))})
}

// SetFullName to'liq ismni bo'lib saqlash
func (u *userUseCase) SetFullName(ctx context.Context, tgID int64, full string) error {
	parts := strings.Fields(strings.TrimSpace(full))

	patch := entity.UserPatch{}
	switch {
	case len(parts) >= 2:
		patch.FirstName = entity.Str(parts[0])
		patch.LastName = entity.Str(strings.Join(parts[1:], " "))
	case len(parts) == 1:
		patch.FirstName = entity.Str(parts[0])
	default:
		return nil
	}

	return u.repo.Upsert(ctx, tgID, patch)
}
