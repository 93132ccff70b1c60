package repository

import (
	"context"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
)

// PlacesRepository tashqi joy-qidiruv servisi bilan ishlash uchun interface
type PlacesRepository interface {
	// SearchText matnli so'rov bo'yicha birinchi natijaning koordinatasini olish;
	// topilmasa (nil, nil)
	SearchText(ctx context.Context, query string) (*entity.LatLng, error)

	// SearchNearby nuqta atrofida kategoriya bo'yicha joylarni qidirish
	SearchNearby(ctx context.Context, center entity.LatLng, categoryKey string) ([]entity.Place, error)

	// ReverseGeocode koordinatani o'qiladigan manzilga aylantirish;
	// topilmasa ("", nil)
	ReverseGeocode(ctx context.Context, point entity.LatLng, language string) (string, error)

	// PhotoURL photo reference ni yuklab olinadigan URL ga aylantirish
	PhotoURL(ctx context.Context, photoName string) (string, error)
}
