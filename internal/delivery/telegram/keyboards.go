package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/telegram-places-bot/internal/dialog"
	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
)

// langReplyKeyboard til tanlash klaviaturasi (bayroqlar bilan)
func langReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("🇺🇿 Oʻzbekcha")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("🇷🇺 Русский")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("🇬🇧 English")),
	)
	kb.OneTimeKeyboard = true
	return kb
}

// contactKeyboard telefon raqamni ulashish tugmasi
func contactKeyboard(label string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(label)),
	)
	kb.OneTimeKeyboard = true
	return kb
}

// locationRequestKeyboard lokatsiya yuborish tugmasi + sozlamalar qatori
func locationRequestKeyboard(sendLocationLabel, settingsLabel string) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation(sendLocationLabel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(settingsLabel)),
	)
}

// categoriesReplyKeyboard kategoriya tugmalari (har qatorda bittadan) va Orqaga
func categoriesReplyKeyboard(categories []entity.CategoryOption, backLabel string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(categories)+1)
	for _, opt := range categories {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(opt.Label)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backLabel)))
	return tgbotapi.NewReplyKeyboard(rows...)
}

// settingsKeyboard sozlamalar menyusi
func settingsKeyboard(editNameLabel, editPhoneLabel, backLabel string) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(editNameLabel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(editPhoneLabel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backLabel)),
	)
}

// placeCardButtons karta ostidagi navigatsiya tugmalari va back_root callback
func placeCardButtons(point *entity.LatLng, backLabel string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if point != nil {
		gmaps := fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f", point.Latitude, point.Longitude)
		ymaps := fmt.Sprintf("https://yandex.com/maps/?rtext=~%f,%f&rtt=auto", point.Latitude, point.Longitude)
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("Google Maps ▶️", gmaps)),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("Yandex Maps ▶️", ymaps)),
		)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(backLabel, "back_root")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// keyboard Reply dagi klaviatura turini tgbotapi markupga aylantirish.
// KeyboardNone uchun nil qaytadi.
func (h *BotHandler) keyboard(kind dialog.KeyboardKind, lang string) interface{} {
	switch kind {
	case dialog.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(true)
	case dialog.KeyboardLanguages:
		return langReplyKeyboard()
	case dialog.KeyboardContact:
		return contactKeyboard(h.loc.Text("share_phone_button", lang))
	case dialog.KeyboardLocation:
		return locationRequestKeyboard(
			h.loc.Text("send_location_button", lang),
			h.loc.Text("settings_button", lang),
		)
	case dialog.KeyboardCategories:
		return categoriesReplyKeyboard(h.loc.Categories(lang), h.loc.Text("back", lang))
	case dialog.KeyboardSettings:
		return settingsKeyboard(
			h.loc.Text("edit_name", lang),
			h.loc.Text("edit_phone", lang),
			h.loc.Text("back", lang),
		)
	default:
		return nil
	}
}
