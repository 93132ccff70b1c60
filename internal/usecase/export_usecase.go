package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
)

// ExportUseCase operator uchun foydalanuvchilar hisobotini tayyorlash
type ExportUseCase interface {
	// UsersReport ro'yxatdan o'tgan foydalanuvchilarni xlsx ko'rinishida qaytarish
	UsersReport(ctx context.Context) (data []byte, filename string, err error)
}

type exportUseCase struct {
	users repository.UserRepository
}

// NewExportUseCase yangi ExportUseCase yaratish
func NewExportUseCase(users repository.UserRepository) ExportUseCase {
	return &exportUseCase{users: users}
}

var reportHeaders = []string{"ID", "Telegram ID", "Til", "Ism", "Familiya", "Telefon"}

// UsersReport foydalanuvchilar jadvalini Excel faylga yozish
func (e *exportUseCase) UsersReport(ctx context.Context) ([]byte, string, error) {
	rows, err := e.users.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("foydalanuvchilarni o'qib bo'lmadi: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for r, u := range rows {
		values := []interface{}{
			u.ID,
			u.TgID,
			strOrEmpty(u.Language),
			strOrEmpty(u.FirstName),
			strOrEmpty(u.LastName),
			strOrEmpty(u.Phone),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("xlsx yozib bo'lmadi: %w", err)
	}

	filename := fmt.Sprintf("users_%s.xlsx", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
