package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/yourusername/telegram-places-bot/config"
	"github.com/yourusername/telegram-places-bot/internal/delivery/telegram"
	"github.com/yourusername/telegram-places-bot/internal/dialog"
	"github.com/yourusername/telegram-places-bot/internal/infrastructure/googleplaces"
	"github.com/yourusername/telegram-places-bot/internal/infrastructure/storage"
	"github.com/yourusername/telegram-places-bot/internal/locale"
	"github.com/yourusername/telegram-places-bot/internal/usecase"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("konfiguratsiya yuklashda xatolik", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo := storage.NewFailoverUserRepository(cfg.DatabaseURL, logger)
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatal("ombor tayyorlashda xatolik", zap.Error(err))
	}

	places := googleplaces.NewClient(cfg.GoogleMapsAPIKey, cfg.RadiusMeters, cfg.MaxResults, logger)

	loc := locale.Table{}
	userUC := usecase.NewUserUseCase(userRepo)
	searchUC := usecase.NewSearchUseCase(places, logger)
	exportUC := usecase.NewExportUseCase(userRepo)

	ctrl := dialog.NewController(userUC, searchUC, loc, logger)

	handler, err := telegram.NewBotHandler(cfg.TelegramToken, cfg.OperatorChatID, ctrl, userUC, exportUC, logger)
	if err != nil {
		logger.Fatal("bot yaratishda xatolik", zap.Error(err))
	}

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot ishlashda xatolik", zap.Error(err))
	}
}
