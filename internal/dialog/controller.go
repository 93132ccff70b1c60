package dialog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/usecase"
)

const categoryCallbackPrefix = "category|"

// session bitta suhbatning holati. point — oxirgi tasdiqlangan so'rov
// nuqtasi (Query Context); suhbat qayta boshlanganda tozalanadi.
type session struct {
	mu    sync.Mutex
	state State
	point *entity.LatLng
}

// Controller suhbat holat mashinasi: ro'yxatdan o'tkazish va qidiruv
// bosqichlarini boshqaradi, qolgan komponentlarni ishga soladi
type Controller struct {
	users  usecase.UserUseCase
	search usecase.SearchUseCase
	loc    Renderer
	log    *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

// NewController yangi dialog controller yaratish
func NewController(users usecase.UserUseCase, search usecase.SearchUseCase, loc Renderer, log *zap.Logger) *Controller {
	return &Controller{
		users:    users,
		search:   search,
		loc:      loc,
		log:      log,
		sessions: make(map[int64]*session),
	}
}

func (c *Controller) session(chatID int64) *session {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[chatID]
	if !ok {
		sess = &session{state: StateLanguage}
		c.sessions[chatID] = sess
	}
	return sess
}

// State joriy suhbat holati (testlar uchun)
func (c *Controller) State(chatID int64) State {
	sess := c.session(chatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// Handle bitta hodisani qayta ishlash. Sessiya mutexi bitta suhbat ichida
// hodisalarni ketma-ket bajarilishini ta'minlaydi; mustaqil suhbatlar
// bir-biriga xalaqit bermaydi.
func (c *Controller) Handle(ctx context.Context, ev Event, emit func(Reply)) {
	sess := c.session(ev.ChatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Komandalar har qanday holatda qabul qilinadi
	switch ev.Command {
	case "start", "restart":
		c.handleStart(ctx, ev, sess, emit)
		return
	case "settings":
		c.enterSettings(ctx, ev, sess, emit)
		return
	}

	switch sess.state {
	case StateLanguage:
		c.onLanguage(ctx, ev, sess, emit)
	case StateFirstName:
		c.onFirstName(ctx, ev, sess, emit)
	case StateLastName:
		c.onLastName(ctx, ev, sess, emit)
	case StateContact:
		c.onContact(ctx, ev, sess, emit)
	case StateAwaitLocation:
		c.onAwaitLocation(ctx, ev, sess, emit)
	case StateCategory:
		c.onCategory(ctx, ev, sess, emit)
	case StateSettings:
		c.onSettings(ctx, ev, sess, emit)
	case StateEditName:
		c.onEditName(ctx, ev, sess, emit)
	case StateEditPhone:
		c.onEditPhone(ctx, ev, sess, emit)
	}
}

// handleStart ro'yxatdan o'tganlar to'g'ridan-to'g'ri qidiruvga o'tadi,
// qolganlar ro'yxatdan o'tkazish oqimining boshiga qaytadi
func (c *Controller) handleStart(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	sess.point = nil

	profile, err := c.users.Profile(ctx, ev.UserID)
	if err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	if profile.IsRegistered() {
		lang := *profile.Language
		sess.state = StateAwaitLocation
		emit(Reply{Text: c.loc.Text("ask_location_or_text", lang), Lang: lang, Keyboard: KeyboardLocation})
		return
	}

	if err := c.users.EnsureUser(ctx, ev.UserID); err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	sess.state = StateLanguage
	emit(Reply{Text: c.loc.Text("lang_prompt", "en"), Lang: "en", Keyboard: KeyboardLanguages})
}

func (c *Controller) onLanguage(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	// Matn bo'lmagan hodisa (lokatsiya, stiker) ro'yxatdan o'tishni siljitmaydi
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		emit(Reply{Text: c.loc.Text("lang_prompt", "en"), Lang: "en", Keyboard: KeyboardLanguages})
		return
	}

	lang := matchLanguage(text)

	if err := c.users.SetLanguage(ctx, ev.UserID, lang); err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	sess.state = StateFirstName
	emit(Reply{Text: c.loc.Text("ask_name", lang), Lang: lang, Keyboard: KeyboardRemove})
}

func (c *Controller) onFirstName(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)

	text := strings.TrimSpace(ev.Text)
	if text == "" {
		emit(Reply{Text: c.loc.Text("ask_name", lang), Lang: lang})
		return
	}

	if err := c.users.SetFirstName(ctx, ev.UserID, text); err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	sess.state = StateLastName
	emit(Reply{Text: c.loc.Text("ask_surname", lang), Lang: lang})
}

func (c *Controller) onLastName(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)

	text := strings.TrimSpace(ev.Text)
	if text == "" {
		emit(Reply{Text: c.loc.Text("ask_surname", lang), Lang: lang})
		return
	}

	if err := c.users.SetLastName(ctx, ev.UserID, text); err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	sess.state = StateContact
	emit(Reply{Text: c.loc.Text("ask_contact", lang), Lang: lang, Keyboard: KeyboardContact})
}

func (c *Controller) onContact(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)

	phone := ev.Contact
	if phone == "" {
		phone = strings.TrimSpace(ev.Text)
	}
	if phone == "" {
		emit(Reply{Text: c.loc.Text("ask_contact", lang), Lang: lang, Keyboard: KeyboardContact})
		return
	}

	if err := c.users.SetPhone(ctx, ev.UserID, phone); err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	sess.state = StateAwaitLocation
	emit(Reply{Text: c.loc.Text("ask_location_or_text", lang), Lang: lang, Keyboard: KeyboardLocation})
}

func (c *Controller) onAwaitLocation(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)
	text := strings.TrimSpace(ev.Text)

	// Sozlamalar tugmasi reply klaviaturada oddiy matn bo'lib keladi
	if text == c.loc.Text("settings_button", lang) {
		c.enterSettings(ctx, ev, sess, emit)
		return
	}

	sess.point = nil

	var point *entity.LatLng
	if ev.Location != nil {
		point = ev.Location
	} else {
		if text == "" {
			emit(Reply{Text: c.loc.Text("ask_location_or_text", lang), Lang: lang, Keyboard: KeyboardLocation})
			return
		}
		point = c.search.ResolveText(ctx, text)
		if point == nil {
			// So'rov topilmadi — shu holatda qolamiz
			emit(Reply{Text: c.loc.Text("no_results", lang), Lang: lang})
			return
		}
	}

	sess.point = point

	addr := c.search.DescribePoint(ctx, *point, lang)
	if addr == "" {
		addr = fmt.Sprintf("%.5f, %.5f", point.Latitude, point.Longitude)
	}
	emit(Reply{Text: fmt.Sprintf("%s %s", c.loc.Text("you_are_here", lang), addr), Lang: lang})

	// Xarita preview
	emit(Reply{Point: point, Lang: lang})

	sess.state = StateCategory
	emit(Reply{Text: c.loc.Text("what_search", lang), Lang: lang, Keyboard: KeyboardCategories})
}

func (c *Controller) onCategory(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)
	text := strings.TrimSpace(ev.Text)

	if ev.Callback == "back_root" || text == c.loc.Text("back", lang) {
		sess.state = StateAwaitLocation
		emit(Reply{Text: c.loc.Text("ask_location_or_text", lang), Lang: lang, Keyboard: KeyboardLocation})
		return
	}

	key := c.categoryKey(ev, lang)
	if key == "" {
		// Notanish matn — holat o'zgarmaydi
		return
	}

	if sess.point == nil {
		sess.state = StateAwaitLocation
		emit(Reply{Text: c.loc.Text("ask_location_or_text", lang), Lang: lang, Keyboard: KeyboardLocation})
		return
	}

	emit(Reply{Text: c.loc.Text("searching", lang), Lang: lang})

	cards := c.search.NearbyCards(ctx, *sess.point, key)
	if len(cards) == 0 {
		emit(Reply{Text: c.loc.Text("no_results", lang), Lang: lang, Keyboard: KeyboardCategories})
		return
	}

	for i := range cards {
		emit(Reply{Card: &cards[i], HTML: true, Lang: lang})
	}

	emit(Reply{Text: c.loc.Text("choose_category", lang), Lang: lang, Keyboard: KeyboardCategories})
}

// categoryKey callback token yoki lokalizatsiya qilingan tugma matnidan
// kanonik kategoriya kalitini aniqlash
func (c *Controller) categoryKey(ev Event, lang string) string {
	if strings.HasPrefix(ev.Callback, categoryCallbackPrefix) {
		return strings.TrimPrefix(ev.Callback, categoryCallbackPrefix)
	}

	text := strings.TrimSpace(ev.Text)
	for _, opt := range c.loc.Categories(lang) {
		if opt.Label == text {
			return opt.Key
		}
	}
	return ""
}

func (c *Controller) enterSettings(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)
	sess.state = StateSettings
	emit(Reply{Text: c.loc.Text("settings_title", lang), Lang: lang, Keyboard: KeyboardSettings})
}

func (c *Controller) onSettings(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)
	text := strings.TrimSpace(ev.Text)

	switch text {
	case c.loc.Text("back", lang):
		sess.state = StateAwaitLocation
		emit(Reply{Text: c.loc.Text("ask_location_or_text", lang), Lang: lang, Keyboard: KeyboardLocation})
	case c.loc.Text("edit_name", lang):
		sess.state = StateEditName
		emit(Reply{Text: c.loc.Text("enter_new_name", lang), Lang: lang, Keyboard: KeyboardRemove})
	case c.loc.Text("edit_phone", lang):
		sess.state = StateEditPhone
		emit(Reply{Text: c.loc.Text("enter_new_phone", lang), Lang: lang, Keyboard: KeyboardRemove})
	default:
		// Notanish tanlov — menyuni qayta ko'rsatamiz
		emit(Reply{Text: c.loc.Text("settings_title", lang), Lang: lang, Keyboard: KeyboardSettings})
	}
}

func (c *Controller) onEditName(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)

	if err := c.users.SetFullName(ctx, ev.UserID, ev.Text); err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	sess.state = StateSettings
	emit(Reply{Text: c.loc.Text("saved", lang), Lang: lang, Keyboard: KeyboardSettings})
}

func (c *Controller) onEditPhone(ctx context.Context, ev Event, sess *session, emit func(Reply)) {
	lang := c.users.Language(ctx, ev.UserID)

	if err := c.users.SetPhone(ctx, ev.UserID, ev.Text); err != nil {
		c.fail(ctx, ev, emit, err)
		return
	}

	sess.state = StateSettings
	emit(Reply{Text: c.loc.Text("saved", lang), Lang: lang, Keyboard: KeyboardSettings})
}

// fail kutilmagan xatolik: log + umumiy uzr, holat o'zgarmaydi
func (c *Controller) fail(ctx context.Context, ev Event, emit func(Reply), err error) {
	c.log.Error("event qayta ishlashda xatolik",
		zap.Int64("chat_id", ev.ChatID),
		zap.Error(err),
	)
	lang := c.users.Language(ctx, ev.UserID)
	emit(Reply{Text: c.loc.Text("error_generic", lang), Lang: lang})
}
