package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
	"github.com/yourusername/telegram-places-bot/internal/geo"
)

// SearchUseCase joy qidirish va kartalarni tayyorlash business logic.
// Tashqi chaqiruv xatolari shu qatlamda log qilinadi va bo'sh natijaga
// aylanadi — dialog controller hech qachon xom xatolik ko'rmaydi.
type SearchUseCase interface {
	// ResolveText matnli so'rovni koordinataga aylantirish; topilmasa nil
	ResolveText(ctx context.Context, query string) *entity.LatLng

	// DescribePoint koordinatani o'qiladigan manzilga aylantirish; topilmasa ""
	DescribePoint(ctx context.Context, point entity.LatLng, lang string) string

	// NearbyCards nuqta atrofidagi joylarni qidirib tayyor kartalar qaytarish
	NearbyCards(ctx context.Context, point entity.LatLng, categoryKey string) []entity.PlaceCard
}

type searchUseCase struct {
	places repository.PlacesRepository
	log    *zap.Logger
	now    func() time.Time
}

// NewSearchUseCase yangi SearchUseCase yaratish
func NewSearchUseCase(places repository.PlacesRepository, log *zap.Logger) SearchUseCase {
	return &searchUseCase{
		places: places,
		log:    log,
		now:    time.Now,
	}
}

// ResolveText matnli so'rovni koordinataga aylantirish
func (s *searchUseCase) ResolveText(ctx context.Context, query string) *entity.LatLng {
	point, err := s.places.SearchText(ctx, query)
	if err != nil {
		s.log.Error("text search muvaffaqiyatsiz", zap.String("query", query), zap.Error(err))
		return nil
	}
	if point == nil {
		return nil
	}

	lat, lng := geo.ClampLatLng(point.Latitude, point.Longitude)
	return &entity.LatLng{Latitude: lat, Longitude: lng}
}

// DescribePoint reverse geocoding orqali manzil olish
func (s *searchUseCase) DescribePoint(ctx context.Context, point entity.LatLng, lang string) string {
	addr, err := s.places.ReverseGeocode(ctx, point, lang)
	if err != nil {
		s.log.Error("reverse geocode muvaffaqiyatsiz", zap.Error(err))
		return ""
	}
	return addr
}

// NearbyCards qidiruv natijalarini kartalarga aylantirish
func (s *searchUseCase) NearbyCards(ctx context.Context, point entity.LatLng, categoryKey string) []entity.PlaceCard {
	requestID := uuid.New().String()

	places, err := s.places.SearchNearby(ctx, point, categoryKey)
	if err != nil {
		s.log.Error("nearby search muvaffaqiyatsiz",
			zap.String("request_id", requestID),
			zap.String("category", categoryKey),
			zap.Error(err),
		)
		return nil
	}

	s.log.Info("nearby search bajarildi",
		zap.String("request_id", requestID),
		zap.String("category", categoryKey),
		zap.Int("results", len(places)),
	)

	cards := make([]entity.PlaceCard, 0, len(places))
	for _, p := range places {
		card := BuildCard(p, point, s.now())

		if p.PhotoName != "" {
			url, err := s.places.PhotoURL(ctx, p.PhotoName)
			if err == nil {
				card.PhotoURL = url
			}
			// xatolik allaqachon client da log qilingan; karta fotosiz ketadi
		}

		cards = append(cards, card)
	}

	return cards
}
