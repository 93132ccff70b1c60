package googleplaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 2000, 10, zap.NewNop())
	c.placesURL = srv.URL
	c.geocodeURL = srv.URL + "/geocode"
	c.sleep = func(time.Duration) {}
	return c, srv
}

func TestSearchNearbyRequestShape(t *testing.T) {
	var got nearbyRequest
	var fieldMask, apiKey string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/places:searchNearby", r.URL.Path)
		fieldMask = r.Header.Get("X-Goog-FieldMask")
		apiKey = r.Header.Get("X-Goog-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		resp := `{"places":[{"displayName":{"text":"Samarqand Darvoza"},"formattedAddress":"Koratosh ko'chasi 5A","location":{"latitude":41.31,"longitude":69.24},"rating":4.4,"userRatingCount":9000,"internationalPhoneNumber":"+998 71 205 11 11","nationalPhoneNumber":"71 205 11 11","photos":[{"name":"places/abc/photos/xyz"}]}]}`
		w.Write([]byte(resp))
	}))

	places, err := c.SearchNearby(context.Background(), entity.LatLng{Latitude: 41.3, Longitude: 69.2}, "Restaurant")
	require.NoError(t, err)
	require.Len(t, places, 1)

	assert.Equal(t, "test-key", apiKey)
	assert.Contains(t, fieldMask, "places.displayName.text")
	assert.Contains(t, fieldMask, "places.currentOpeningHours.openNow")

	assert.Equal(t, 10, got.MaxResultCount)
	assert.Equal(t, []string{"restaurant", "cafe", "bakery"}, got.IncludedTypes)
	assert.Equal(t, 41.3, got.LocationRestriction.Circle.Center.Latitude)
	assert.Equal(t, 2000.0, got.LocationRestriction.Circle.Radius)

	p := places[0]
	assert.Equal(t, "Samarqand Darvoza", p.Name)
	assert.Equal(t, "+998 71 205 11 11", p.Phone) // xalqaro format ustuvor
	assert.Equal(t, "places/abc/photos/xyz", p.PhotoName)
}

func TestSearchNearbyUnknownCategoryOmitsTypes(t *testing.T) {
	var got nearbyRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"places":[]}`))
	}))

	places, err := c.SearchNearby(context.Background(), entity.LatLng{}, "Nomalum")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Nil(t, got.IncludedTypes)
}

func TestSearchTextNoResults(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/places:searchText", r.URL.Path)
		w.Write([]byte(`{}`))
	}))

	loc, err := c.SearchText(context.Background(), "mavjud emas joy")
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestSearchTextFirstResult(t *testing.T) {
	var got textRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"places":[{"location":{"latitude":39.65,"longitude":66.96}}]}`))
	}))

	loc, err := c.SearchText(context.Background(), "Registon maydoni")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 1, got.MaxResultCount)
	assert.Equal(t, 39.65, loc.Latitude)
	assert.Equal(t, 66.96, loc.Longitude)
}

func TestRetryOnServerError(t *testing.T) {
	attempts := 0
	var delays []time.Duration

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"places":[]}`))
	}))
	c.sleep = func(d time.Duration) { delays = append(delays, d) }

	_, err := c.SearchNearby(context.Background(), entity.LatLng{}, "Park")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestRetryExhausted(t *testing.T) {
	attempts := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"denied"}`))
	}))

	_, err := c.SearchNearby(context.Background(), entity.LatLng{}, "Park")
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "status 403")
}

func TestPhotoURLFollowsSingleRedirect(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://lh3.googleusercontent.com/photo.jpg")
		w.WriteHeader(http.StatusFound)
	}))

	got, err := c.PhotoURL(context.Background(), "places/abc/photos/xyz")
	require.NoError(t, err)
	assert.Equal(t, "https://lh3.googleusercontent.com/photo.jpg", got)
}

func TestPhotoURLDirectResponse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	got, err := c.PhotoURL(context.Background(), "places/abc/photos/xyz")
	require.NoError(t, err)
	assert.Contains(t, got, "places/abc/photos/xyz/media")
	assert.Contains(t, got, "maxHeightPx=800")
}

func TestReverseGeocodePreference(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/geocode", r.URL.Path)
		require.Equal(t, "uz", r.URL.Query().Get("language"))
		resp := `{"results":[
			{"types":["locality","political"],"formatted_address":"Tashkent, Uzbekistan"},
			{"types":["route"],"formatted_address":"Amir Temur Avenue, Tashkent"},
			{"types":["sublocality_level_1","political"],"formatted_address":"Yunusabad, Tashkent"}
		]}`
		w.Write([]byte(resp))
	}))

	addr, err := c.ReverseGeocode(context.Background(), entity.LatLng{Latitude: 41.3, Longitude: 69.2}, "uz")
	require.NoError(t, err)
	assert.Equal(t, "Yunusabad, Tashkent", addr)
}

func TestReverseGeocodePlusCodeFallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := `{"results":[{"types":["plus_code"],"formatted_address":"8Q63+2F"}],
			"plus_code":{"compound_code":"8Q63+2F Tashkent","global_code":"8FQ78Q63+2F"}}`
		w.Write([]byte(resp))
	}))

	addr, err := c.ReverseGeocode(context.Background(), entity.LatLng{}, "en")
	require.NoError(t, err)
	assert.Equal(t, "8Q63+2F Tashkent", addr)
}

func TestReverseGeocodeEmpty(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))

	addr, err := c.ReverseGeocode(context.Background(), entity.LatLng{}, "en")
	require.NoError(t, err)
	assert.Equal(t, "", addr)
}
