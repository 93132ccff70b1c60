package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
)

type postgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository PostgreSQL asosidagi user repository
func NewPostgresUserRepository(dsn string) (repository.UserRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &postgresUserRepository{db: db}, nil
}

// Init users jadvalini yaratish (idempotent)
func (r *postgresUserRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&entity.User{})
}

// Upsert INSERT ... ON CONFLICT bilan coalesce-on-write yangilash:
// nil kelgan maydonlar saqlangan qiymatni bosib yozmaydi
func (r *postgresUserRepository) Upsert(ctx context.Context, tgID int64, patch entity.UserPatch) error {
	row := entity.User{
		TgID:      tgID,
		Language:  patch.Language,
		FirstName: patch.FirstName,
		LastName:  patch.LastName,
		Phone:     patch.Phone,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tg_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"language":   gorm.Expr("COALESCE(EXCLUDED.language, users.language)"),
			"first_name": gorm.Expr("COALESCE(EXCLUDED.first_name, users.first_name)"),
			"last_name":  gorm.Expr("COALESCE(EXCLUDED.last_name, users.last_name)"),
			"phone":      gorm.Expr("COALESCE(EXCLUDED.phone, users.phone)"),
		}),
	}).Create(&row).Error
}

// Get profilni tg_id bo'yicha olish; topilmasa (nil, nil)
func (r *postgresUserRepository) Get(ctx context.Context, tgID int64) (*entity.User, error) {
	var row entity.User
	err := r.db.WithContext(ctx).Where("tg_id = ?", tgID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List barcha profillarni olish
func (r *postgresUserRepository) List(ctx context.Context) ([]entity.User, error) {
	var rows []entity.User
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	return rows, err
}
