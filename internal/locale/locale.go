package locale

import "github.com/yourusername/telegram-places-bot/internal/domain/entity"

// DefaultLanguage lug'atda topilmagan tillar uchun zaxira til
const DefaultLanguage = "en"

// CategoryKeys kanonik kategoriya kalitlari (tildan mustaqil, tartib muhim)
var CategoryKeys = []string{
	"Restaurant",
	"Hotel",
	"Park",
	"Historic Places",
}

var texts = map[string]map[string]string{
	"lang_prompt": {
		"uz": "🌐 Tilni tanlang:",
		"ru": "🌐 Выберите язык:",
		"en": "🌐 Choose a language:",
	},
	"ask_name": {
		"uz": "👤 Ismingizni kiriting:",
		"ru": "👤 Введите ваше имя:",
		"en": "👤 Please enter your first name:",
	},
	"ask_surname": {
		"uz": "🧾 Familiyangizni kiriting:",
		"ru": "🧾 Введите вашу фамилию:",
		"en": "🧾 Please enter your surname:",
	},
	"ask_contact": {
		"uz": "📞 Telefon raqamingizni yuboring (tugma orqali) yoki yozing:",
		"ru": "📞 Отправьте номер (кнопкой) или введите вручную:",
		"en": "📞 Send your phone number (button) or type it:",
	},
	"share_phone_button": {
		"uz": "📲 Raqamni ulashish",
		"ru": "📲 Поделиться номером",
		"en": "📲 Share phone",
	},
	"ask_location_or_text": {
		"uz": "📍 Lokatsiyani yuboring yoki manzil/joy nomini yozing.\n\nMisollar:\n- \"Ziyolilar 9, Toshkent\"\n- \"Registon, Samarqand\"\n- \"Jizzax shahri\"",
		"ru": "📍 Отправьте геолокацию или введите адрес/место.\n\nПримеры:\n- \"ул. Зиёлилар 9, Ташкент\"\n- \"Регистан, Самарканд\"\n- \"город Джизак\"",
		"en": "📍 Send your location or type an address/place.\n\nExamples:\n- \"Ziyolilar 9, Tashkent\"\n- \"Registan, Samarkand\"\n- \"Jizzakh city\"",
	},
	"you_are_here": {
		"uz": "📌 Siz hozir shu joydasiz:",
		"ru": "📌 Вы сейчас здесь:",
		"en": "📌 You are here:",
	},
	"what_search": {
		"uz": "🔎 Nimani qidiramiz?",
		"ru": "🔎 Что будем искать?",
		"en": "🔎 What do you want to search for?",
	},
	"send_location_button": {
		"uz": "📍 Lokatsiyani yuborish",
		"ru": "📍 Отправить геолокацию",
		"en": "📍 Send location",
	},
	"choose_category": {
		"uz": "🗂️ Kategoriya tanlang:",
		"ru": "🗂️ Выберите категорию:",
		"en": "🗂️ Choose a category:",
	},
	"back": {
		"uz": "⬅️ Orqaga",
		"ru": "⬅️ Назад",
		"en": "⬅️ Back",
	},
	"searching": {
		"uz": "🔄 Qidirilmoqda…",
		"ru": "🔄 Ищу…",
		"en": "🔄 Searching…",
	},
	"no_results": {
		"uz": "🙈 Hech narsa topilmadi.",
		"ru": "🙈 Ничего не найдено.",
		"en": "🙈 No results found.",
	},
	"settings_button": {
		"uz": "⚙️ Sozlamalar",
		"ru": "⚙️ Настройки",
		"en": "⚙️ Settings",
	},
	"settings_title": {
		"uz": "🛠️ Nimani tahrirlamoqchisiz?",
		"ru": "🛠️ Что хотите изменить?",
		"en": "🛠️ What would you like to edit?",
	},
	"edit_name": {
		"uz": "✏️ Ism/Familiya",
		"ru": "✏️ Имя/Фамилия",
		"en": "✏️ Name/Surname",
	},
	"edit_phone": {
		"uz": "📞 Telefon raqami",
		"ru": "📞 Номер телефона",
		"en": "📞 Phone number",
	},
	"enter_new_name": {
		"uz": "✍️ Yangi ism yoki to'liq ism-familiyangizni yuboring:",
		"ru": "✍️ Отправьте новое имя или ФИО:",
		"en": "✍️ Send your new first name or full name:",
	},
	"enter_new_phone": {
		"uz": "📲 Yangi telefon raqamingizni yuboring:",
		"ru": "📲 Отправьте ваш новый номер телефона:",
		"en": "📲 Send your new phone number:",
	},
	"saved": {
		"uz": "✅ Saqlandi.",
		"ru": "✅ Сохранено.",
		"en": "✅ Saved.",
	},
	"error_generic": {
		"uz": "⚠️ Xatolik yuz berdi. Qayta urinib ko'ring.",
		"ru": "⚠️ Произошла ошибка. Попробуйте ещё раз.",
		"en": "⚠️ An error occurred. Please try again.",
	},
	"settings_shortcut_hint": {
		"uz": "«/settings» — sozlamalarni ochish",
		"ru": "«/settings» — открыть настройки",
		"en": "Use \"/settings\" to open settings",
	},
}

var categoryLabels = map[string][]string{
	"uz": {"🍽️ Restoran", "🏨 Mehmonxona", "🌳 Park", "🏛️ Tarixiy joylar"},
	"ru": {"🍽️ Рестораны", "🏨 Отели", "🌳 Парки", "🏛️ Исторические места"},
	"en": {"🍽️ Restaurants", "🏨 Hotels", "🌳 Parks", "🏛️ Historical places"},
}

// Table satr va tugma lug'atlariga kirish nuqtasi
type Table struct{}

// Text kalit va til bo'yicha matn olish; til topilmasa en ga qaytadi
func (Table) Text(key, lang string) string {
	byLang, ok := texts[key]
	if !ok {
		return key
	}
	if s, ok := byLang[lang]; ok {
		return s
	}
	return byLang[DefaultLanguage]
}

// Categories lokalizatsiya qilingan kategoriya tugmalari,
// har biri kanonik kalit bilan juftlangan
func (Table) Categories(lang string) []entity.CategoryOption {
	labels, ok := categoryLabels[lang]
	if !ok {
		labels = categoryLabels[DefaultLanguage]
	}
	opts := make([]entity.CategoryOption, 0, len(labels))
	for i, label := range labels {
		key := label
		if i < len(CategoryKeys) {
			key = CategoryKeys[i]
		}
		opts = append(opts, entity.CategoryOption{Label: label, Key: key})
	}
	return opts
}
