package telegram

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/internal/dialog"
	"github.com/yourusername/telegram-places-bot/internal/domain/entity"
	"github.com/yourusername/telegram-places-bot/internal/locale"
	"github.com/yourusername/telegram-places-bot/internal/usecase"
)

const updateQueueSize = 64

// BotHandler Telegram bot handler
type BotHandler struct {
	bot            *tgbotapi.BotAPI
	ctrl           *dialog.Controller
	users          usecase.UserUseCase
	export         usecase.ExportUseCase
	loc            locale.Table
	operatorChatID int64
	log            *zap.Logger

	// Har bir suhbat uchun alohida navbat: bitta suhbat ichida hodisalar
	// kelish tartibida qayta ishlanadi, mustaqil suhbatlar parallel boradi
	queueMu sync.Mutex
	queues  map[int64]chan tgbotapi.Update
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	operatorChatID int64,
	ctrl *dialog.Controller,
	users usecase.UserUseCase,
	export usecase.ExportUseCase,
	log *zap.Logger,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:            bot,
		ctrl:           ctrl,
		users:          users,
		export:         export,
		loc:            locale.Table{},
		operatorChatID: operatorChatID,
		log:            log,
		queues:         make(map[int64]chan tgbotapi.Update),
	}, nil
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	h.log.Info("bot ishga tushdi", zap.String("username", h.bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.log.Info("bot to'xtatilmoqda")
			return ctx.Err()
		case update := <-updates:
			h.dispatch(ctx, update)
		}
	}
}

// dispatch update ni tegishli suhbat navbatiga joylash
func (h *BotHandler) dispatch(ctx context.Context, update tgbotapi.Update) {
	chatID := updateChatID(update)
	if chatID == 0 {
		return
	}

	h.queueMu.Lock()
	q, ok := h.queues[chatID]
	if !ok {
		q = make(chan tgbotapi.Update, updateQueueSize)
		h.queues[chatID] = q
		go h.worker(ctx, q)
	}
	h.queueMu.Unlock()

	select {
	case q <- update:
	default:
		h.log.Warn("suhbat navbati to'ldi, update tashlab yuborildi", zap.Int64("chat_id", chatID))
	}
}

func (h *BotHandler) worker(ctx context.Context, q chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-q:
			h.handleUpdate(ctx, update)
		}
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	return 0
}

// handleUpdate bitta update ni qayta ishlash. Kutilmagan panic shu yerda
// ushlanadi: log + umumiy uzr, suhbat holati o'zgarmaydi.
func (h *BotHandler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	chatID := updateChatID(update)

	defer func() {
		if r := recover(); r != nil {
			h.log.Error("update qayta ishlashda panic",
				zap.Any("panic", r),
				zap.Int64("chat_id", chatID),
				zap.ByteString("stack", debug.Stack()),
			)
			h.sendText(chatID, h.loc.Text("error_generic", locale.DefaultLanguage))
		}
	}()

	if update.CallbackQuery != nil {
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(ctx, update.Message)
}

// handleCallback inline tugma bosilishini qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Callback ga javob (spinnerni to'xtatish)
	callback := tgbotapi.NewCallback(cq.ID, "")
	if _, err := h.bot.Request(callback); err != nil {
		h.log.Warn("callback javobida xatolik", zap.Error(err))
	}

	chatID := cq.Message.Chat.ID
	ev := dialog.Event{
		ChatID:   chatID,
		UserID:   cq.From.ID,
		Callback: cq.Data,
	}

	h.ctrl.Handle(ctx, ev, func(r dialog.Reply) { h.send(chatID, r) })
}

// handleMessage xabarni dialog hodisasiga aylantirib controllerga uzatish
func (h *BotHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ev := dialog.Event{
		ChatID: chatID,
		UserID: msg.From.ID,
		Text:   msg.Text,
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "restart", "settings":
			ev.Command = msg.Command()
			ev.Text = ""
		case "export":
			h.handleExportCommand(ctx, msg)
			return
		default:
			h.handleUnknownCommand(ctx, msg)
			return
		}
	}

	if msg.Contact != nil {
		ev.Contact = msg.Contact.PhoneNumber
	}
	if msg.Location != nil {
		ev.Location = &entity.LatLng{
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		}
	}

	h.ctrl.Handle(ctx, ev, func(r dialog.Reply) { h.send(chatID, r) })
}

// handleExportCommand faqat operator chatidan qabul qilinadi
func (h *BotHandler) handleExportCommand(ctx context.Context, msg *tgbotapi.Message) {
	if h.operatorChatID == 0 || msg.Chat.ID != h.operatorChatID {
		h.handleUnknownCommand(ctx, msg)
		return
	}

	data, filename, err := h.export.UsersReport(ctx)
	if err != nil {
		h.log.Error("export tayyorlashda xatolik", zap.Error(err))
		h.sendText(msg.Chat.ID, h.loc.Text("error_generic", locale.DefaultLanguage))
		return
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	if _, err := h.bot.Send(doc); err != nil {
		h.log.Error("export yuborishda xatolik", zap.Error(err))
	}
}

// handleUnknownCommand noma'lum komanda uchun yo'l-yo'riq
func (h *BotHandler) handleUnknownCommand(ctx context.Context, msg *tgbotapi.Message) {
	lang := h.users.Language(ctx, msg.From.ID)
	text := fmt.Sprintf("%s\n\n%s",
		h.loc.Text("ask_location_or_text", lang),
		h.loc.Text("settings_shortcut_hint", lang),
	)
	h.sendText(msg.Chat.ID, text)
}

// send controllerdan kelgan javobni Telegram xabariga aylantirish
func (h *BotHandler) send(chatID int64, r dialog.Reply) {
	switch {
	case r.Card != nil:
		h.sendCard(chatID, r)
	case r.Point != nil:
		loc := tgbotapi.NewLocation(chatID, r.Point.Latitude, r.Point.Longitude)
		if _, err := h.bot.Send(loc); err != nil {
			h.log.Warn("lokatsiya yuborishda xatolik", zap.Error(err))
		}
	default:
		msg := tgbotapi.NewMessage(chatID, r.Text)
		if r.HTML {
			msg.ParseMode = tgbotapi.ModeHTML
		}
		if markup := h.keyboard(r.Keyboard, r.Lang); markup != nil {
			msg.ReplyMarkup = markup
		}
		if _, err := h.bot.Send(msg); err != nil {
			h.log.Error("xabar yuborishda xatolik", zap.Error(err))
		}
	}
}

// sendCard kartani foto (bo'lsa) yoki matn sifatida yuborish
func (h *BotHandler) sendCard(chatID int64, r dialog.Reply) {
	markup := placeCardButtons(r.Card.Location, h.loc.Text("back", r.Lang))

	if r.Card.PhotoURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(r.Card.PhotoURL))
		photo.Caption = r.Card.Caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = markup
		if _, err := h.bot.Send(photo); err != nil {
			h.log.Error("foto yuborishda xatolik", zap.Error(err))
		}
		return
	}

	msg := tgbotapi.NewMessage(chatID, r.Card.Caption)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error("karta yuborishda xatolik", zap.Error(err))
	}
}

// sendText oddiy xabar yuborish
func (h *BotHandler) sendText(chatID int64, text string) {
	if chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error("xabar yuborishda xatolik", zap.Error(err))
	}
}
