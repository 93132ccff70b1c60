package dialog

import "github.com/yourusername/telegram-places-bot/internal/domain/entity"

// State suhbat holati
type State int

const (
	StateLanguage State = iota
	StateFirstName
	StateLastName
	StateContact
	StateAwaitLocation
	StateCategory
	StateSettings
	StateEditName
	StateEditPhone
)

var stateNames = map[State]string{
	StateLanguage:      "language",
	StateFirstName:     "first_name",
	StateLastName:      "last_name",
	StateContact:       "contact",
	StateAwaitLocation: "await_location",
	StateCategory:      "category",
	StateSettings:      "settings",
	StateEditName:      "edit_name",
	StateEditPhone:     "edit_phone",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Event transportdan kelgan bitta hodisa
type Event struct {
	ChatID   int64
	UserID   int64
	Command  string // "start", "restart", "settings"
	Text     string
	Location *entity.LatLng
	Contact  string // contact payload dan olingan telefon
	Callback string // "category|<key>" yoki "back_root"
}

// KeyboardKind javobga biriktiriladigan klaviatura turi.
// Klaviaturaning o'zi delivery qatlamida quriladi.
type KeyboardKind int

const (
	KeyboardNone KeyboardKind = iota
	KeyboardRemove
	KeyboardLanguages
	KeyboardContact
	KeyboardLocation
	KeyboardCategories
	KeyboardSettings
)

// Reply controllerdan transportga chiqadigan bitta xabar
type Reply struct {
	Text     string
	Lang     string
	HTML     bool
	Keyboard KeyboardKind
	Card     *entity.PlaceCard
	Point    *entity.LatLng // xarita preview uchun
}

// Renderer lokalizatsiya jadvallariga tor interface
type Renderer interface {
	Text(key, lang string) string
	Categories(lang string) []entity.CategoryOption
}
