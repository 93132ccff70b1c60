package googleplaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/domain/repository"
)

const (
	placesBaseURL  = "https://places.googleapis.com/v1"
	geocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

	requestTimeout = 20 * time.Second
	maxAttempts    = 3
	photoMaxHeight = 800
)

// Yangi Places API faqat leaf fieldlarni so'rashni talab qiladi
const fieldMaskNearby = "places.name," +
	"places.displayName.text," +
	"places.formattedAddress," +
	"places.location," +
	"places.primaryType," +
	"places.rating," +
	"places.userRatingCount," +
	"places.currentOpeningHours.openNow," +
	"places.currentOpeningHours.weekdayDescriptions," +
	"places.nationalPhoneNumber," +
	"places.internationalPhoneNumber," +
	"places.websiteUri," +
	"places.googleMapsUri," +
	"places.photos.name"

const fieldMaskText = "places.location"

// categoryTypeMap kanonik kategoriya kalitini Places type filtrlariga o'tkazadi.
// Ro'yxatda yo'q kategoriya type filtrisiz qidiriladi.
var categoryTypeMap = map[string][]string{
	"Restaurant":      {"restaurant", "cafe", "bakery"},
	"Hotel":           {"lodging"},
	"Park":            {"park"},
	"Historic Places": {"tourist_attraction", "museum", "art_gallery"},
}

// Client Google Places v1 va Geocoding API mijozi
type Client struct {
	httpClient   *http.Client
	photoClient  *http.Client // redirectga ergashmaydi
	apiKey       string
	radiusMeters int
	maxResults   int
	log          *zap.Logger

	// test hooklari
	placesURL  string
	geocodeURL string
	sleep      func(time.Duration)
}

// NewClient yangi Places mijozini yaratish
func NewClient(apiKey string, radiusMeters, maxResults int, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		photoClient: &http.Client{
			Timeout: requestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		apiKey:       apiKey,
		radiusMeters: radiusMeters,
		maxResults:   maxResults,
		log:          log,
		placesURL:    placesBaseURL,
		geocodeURL:   geocodeBaseURL,
		sleep:        time.Sleep,
	}
}

var _ repository.PlacesRepository = (*Client)(nil)

type latLngJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type nearbyRequest struct {
	MaxResultCount      int      `json:"maxResultCount"`
	IncludedTypes       []string `json:"includedTypes,omitempty"`
	LocationRestriction struct {
		Circle struct {
			Center latLngJSON `json:"center"`
			Radius float64    `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type textRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount"`
}

type placeJSON struct {
	DisplayName *struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress    string      `json:"formattedAddress"`
	Location            *latLngJSON `json:"location"`
	Rating              float64     `json:"rating"`
	UserRatingCount     int         `json:"userRatingCount"`
	CurrentOpeningHours *struct {
		OpenNow             *bool    `json:"openNow"`
		WeekdayDescriptions []string `json:"weekdayDescriptions"`
	} `json:"currentOpeningHours"`
	NationalPhoneNumber      string `json:"nationalPhoneNumber"`
	InternationalPhoneNumber string `json:"internationalPhoneNumber"`
	WebsiteURI               string `json:"websiteUri"`
	GoogleMapsURI            string `json:"googleMapsUri"`
	Photos                   []struct {
		Name string `json:"name"`
	} `json:"photos"`
}

type placesResponse struct {
	Places []placeJSON `json:"places"`
}

// SearchNearby nuqta atrofida kategoriya bo'yicha joylarni qidirish
func (c *Client) SearchNearby(ctx context.Context, center entity.LatLng, categoryKey string) ([]entity.Place, error) {
	var req nearbyRequest
	req.MaxResultCount = c.maxResults
	req.IncludedTypes = categoryTypeMap[categoryKey]
	req.LocationRestriction.Circle.Center = latLngJSON{Latitude: center.Latitude, Longitude: center.Longitude}
	req.LocationRestriction.Circle.Radius = float64(c.radiusMeters)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	body, err := c.postJSON(ctx, c.placesURL+"/places:searchNearby", fieldMaskNearby, payload)
	if err != nil {
		return nil, err
	}

	var resp placesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("nearby javobini o'qib bo'lmadi: %w", err)
	}

	places := make([]entity.Place, 0, len(resp.Places))
	for _, p := range resp.Places {
		places = append(places, toPlace(p))
	}
	return places, nil
}

// SearchText matnli so'rov bo'yicha birinchi natijaning koordinatasini olish
func (c *Client) SearchText(ctx context.Context, query string) (*entity.LatLng, error) {
	payload, err := json.Marshal(textRequest{TextQuery: query, MaxResultCount: 1})
	if err != nil {
		return nil, err
	}

	body, err := c.postJSON(ctx, c.placesURL+"/places:searchText", fieldMaskText, payload)
	if err != nil {
		return nil, err
	}

	var resp placesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("text search javobini o'qib bo'lmadi: %w", err)
	}

	if len(resp.Places) == 0 || resp.Places[0].Location == nil {
		return nil, nil
	}
	loc := resp.Places[0].Location
	return &entity.LatLng{Latitude: loc.Latitude, Longitude: loc.Longitude}, nil
}

// PhotoURL photo reference ni bevosita yuklanadigan URL ga aylantirish.
// Backend redirect qaytarsa bitta hop Location olinadi.
func (c *Client) PhotoURL(ctx context.Context, photoName string) (string, error) {
	mediaURL := fmt.Sprintf("%s/%s/media?maxHeightPx=%d&key=%s", c.placesURL, photoName, photoMaxHeight, c.apiKey)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(backoffDelay(attempt))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
		if err != nil {
			return "", err
		}

		resp, err := c.photoClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusSeeOther {
			if loc := resp.Header.Get("Location"); loc != "" {
				return loc, nil
			}
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return mediaURL, nil
		}

		lastErr = fmt.Errorf("photo fetch status %d: %s", resp.StatusCode, truncateBody(body))
	}

	c.log.Warn("photo url olinmadi", zap.Error(lastErr))
	return "", lastErr
}

// ReverseGeocode koordinatani o'qiladigan manzilga aylantirish.
// Tanlash tartibi: sublocality/neighborhood > route > locality/admin-area >
// compound plus-code > global plus-code > birinchi natija.
func (c *Client) ReverseGeocode(ctx context.Context, point entity.LatLng, language string) (string, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", point.Latitude, point.Longitude))
	q.Set("key", c.apiKey)
	q.Set("language", language)

	body, err := c.getJSON(ctx, c.geocodeURL+"?"+q.Encode())
	if err != nil {
		return "", err
	}

	var resp struct {
		Results []struct {
			Types            []string `json:"types"`
			FormattedAddress string   `json:"formatted_address"`
		} `json:"results"`
		PlusCode struct {
			GlobalCode   string `json:"global_code"`
			CompoundCode string `json:"compound_code"`
		} `json:"plus_code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("geocode javobini o'qib bo'lmadi: %w", err)
	}

	if len(resp.Results) == 0 {
		return "", nil
	}

	preferredOrders := [][]string{
		{"sublocality", "sublocality_level_1", "neighborhood"},
		{"route"},
		{"locality", "administrative_area_level_2"},
	}
	for _, wanted := range preferredOrders {
		for _, r := range resp.Results {
			if hasAnyType(r.Types, wanted) {
				return r.FormattedAddress, nil
			}
		}
	}

	if resp.PlusCode.CompoundCode != "" {
		return resp.PlusCode.CompoundCode, nil
	}
	if resp.PlusCode.GlobalCode != "" {
		return resp.PlusCode.GlobalCode, nil
	}

	return resp.Results[0].FormattedAddress, nil
}

// postJSON POST so'rovni retry siyosati bilan bajarish
func (c *Client) postJSON(ctx context.Context, endpoint, fieldMask string, payload []byte) ([]byte, error) {
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Goog-Api-Key", c.apiKey)
		req.Header.Set("X-Goog-FieldMask", fieldMask)
		return req, nil
	})
}

func (c *Client) getJSON(ctx context.Context, endpoint string) ([]byte, error) {
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
}

// doWithRetry eksponensial backoff bilan maksimal 3 urinish.
// Transport xatolari ham, muvaffaqiyatsiz statuslar ham qayta uriniladi;
// urinishlar tugagach oxirgi xatolik javob tanasi bilan log qilinadi.
func (c *Client) doWithRetry(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(backoffDelay(attempt))
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))
			continue
		}

		return body, nil
	}

	c.log.Error("places so'rovi muvaffaqiyatsiz tugadi", zap.Error(lastErr))
	return nil, lastErr
}

// backoffDelay urinish raqamidan kechikish: 1s, 2s, ...
func backoffDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

func toPlace(p placeJSON) entity.Place {
	out := entity.Place{
		Address:         p.FormattedAddress,
		Rating:          p.Rating,
		UserRatingCount: p.UserRatingCount,
		WebsiteURI:      p.WebsiteURI,
		GoogleMapsURI:   p.GoogleMapsURI,
	}

	if p.DisplayName != nil {
		out.Name = p.DisplayName.Text
	}
	if p.Location != nil {
		out.Location = &entity.LatLng{Latitude: p.Location.Latitude, Longitude: p.Location.Longitude}
	}
	if p.CurrentOpeningHours != nil {
		out.Hours = &entity.OpeningHours{
			OpenNow:             p.CurrentOpeningHours.OpenNow,
			WeekdayDescriptions: p.CurrentOpeningHours.WeekdayDescriptions,
		}
	}

	// Xalqaro format ustuvor
	out.Phone = p.InternationalPhoneNumber
	if out.Phone == "" {
		out.Phone = p.NationalPhoneNumber
	}

	if len(p.Photos) > 0 {
		out.PhotoName = p.Photos[0].Name
	}

	return out
}

func hasAnyType(have, wanted []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "…"
	}
	return string(body)
}
