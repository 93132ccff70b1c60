package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/geo"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// BuildCard joy va so'rov nuqtasidan HTML karta yig'ish.
// Qator tartibi: nom, reyting+masofa, ish vaqti, manzil, telefon, website.
// now bugungi ish vaqti qatorini tanlash uchun (UTC taxmini).
func BuildCard(p entity.Place, origin entity.LatLng, now time.Time) entity.PlaceCard {
	name := p.Name
	if name == "" {
		name = "—"
	}
	addr := p.Address
	if addr == "" {
		addr = "—"
	}

	distLine := ""
	if p.Location != nil {
		dkm := geo.HaversineKm(origin.Latitude, origin.Longitude, p.Location.Latitude, p.Location.Longitude)
		distLine = fmt.Sprintf(" • %s away", formatDistance(dkm))
	}

	lines := []string{fmt.Sprintf("<b>%s</b>", name)}

	if p.Rating > 0 {
		// Butun reyting "4.0" emas "4" bo'lib chiqadi
		rating := strconv.FormatFloat(p.Rating, 'f', -1, 64)
		lines = append(lines, fmt.Sprintf("⭐ %s (%d)%s", rating, p.UserRatingCount, distLine))
	} else if distLine != "" {
		lines = append(lines, strings.TrimLeft(distLine, " •"))
	}

	if hoursLine := buildHoursLine(p.Hours, now); hoursLine != "" {
		lines = append(lines, hoursLine)
	}

	lines = append(lines, fmt.Sprintf("📍 %s", addr))

	if p.Phone != "" {
		lines = append(lines, fmt.Sprintf("📞 %s", p.Phone))
	}

	// Website bo'lmasa Google Maps sahifasiga yo'naltiramiz
	if p.WebsiteURI != "" {
		lines = append(lines, fmt.Sprintf(`🌐 <a href="%s">Website</a>`, p.WebsiteURI))
	} else if p.GoogleMapsURI != "" {
		lines = append(lines, fmt.Sprintf(`🌐 <a href="%s">Google Maps Page</a>`, p.GoogleMapsURI))
	}

	return entity.PlaceCard{
		Caption:  strings.Join(lines, "\n"),
		Location: p.Location,
	}
}

// formatDistance masofani formatlash:
// 1 km dan kam — metrda (kasr tashlanadi), 10 km gacha — bitta kasr bilan,
// undan yuqorisi — yaxlitlangan km
func formatDistance(dkm float64) string {
	if dkm < 1.0 {
		return fmt.Sprintf("%d m", int(dkm*1000))
	}
	if dkm < 10 {
		return fmt.Sprintf("%.1f km", dkm)
	}
	return fmt.Sprintf("%d km", int(math.Round(dkm)))
}

// buildHoursLine "open now" belgisi va bugungi ish vaqtini birlashtirish.
// Ikkalasi ham bo'lmasa bo'sh qaytadi va qator umuman chiqmaydi.
func buildHoursLine(hours *entity.OpeningHours, now time.Time) string {
	if hours == nil {
		return ""
	}

	todayLine := todayHoursLine(hours.WeekdayDescriptions, now)

	switch {
	case hours.OpenNow != nil && todayLine != "":
		return openNowBadge(*hours.OpenNow) + " • " + todayLine
	case hours.OpenNow != nil:
		return openNowBadge(*hours.OpenNow)
	default:
		return todayLine
	}
}

func openNowBadge(open bool) string {
	if open {
		return "🟢 Open now"
	}
	return "🔴 Closed now"
}

// todayHoursLine weekdayDescriptions dan bugungi qatorni tanlash.
// Hafta kuni chaqiruvchining UTC kuni bo'yicha olinadi — joyning o'z
// vaqt zonasi noma'lum, bu bilib turib qilingan taxmin.
// Mos qator topilmasa birinchi mavjud qator qaytadi.
func todayHoursLine(descriptions []string, now time.Time) string {
	if len(descriptions) == 0 {
		return ""
	}

	// time.Weekday da yakshanba 0, bizga dushanba=0 kerak
	idx := (int(now.UTC().Weekday()) + 6) % 7
	name := weekdayNames[idx]

	for _, line := range descriptions {
		if strings.HasPrefix(line, name+":") || strings.HasPrefix(line, name+" :") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[1])
			}
			return line
		}
	}

	return descriptions[0]
}
