package entity

// LatLng koordinata juftligi
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// OpeningHours joyning ish vaqti haqida ma'lumot
type OpeningHours struct {
	OpenNow             *bool
	WeekdayDescriptions []string // "Monday: 9AM–5PM" ko'rinishidagi qatorlar
}

// Place qidiruv natijasidagi bitta joy
type Place struct {
	Name            string
	Address         string
	Location        *LatLng
	Rating          float64
	UserRatingCount int
	Hours           *OpeningHours
	Phone           string
	WebsiteURI      string
	GoogleMapsURI   string
	PhotoName       string
}

// PlaceCard foydalanuvchiga yuboriladigan tayyor karta
type PlaceCard struct {
	Caption  string // HTML formatdagi matn
	PhotoURL string
	Location *LatLng
}

// CategoryOption lokalizatsiya qilingan kategoriya tugmasi:
// Label ko'rsatiladigan matn, Key esa til-mustaqil kalit
type CategoryOption struct {
	Label string
	Key   string
}
