package app

import (
	"log"

	"gupshup/chat_backend/internal/config"
	"gupshup/chat_backend/internal/handler"
	"gupshup/chat_backend/internal/pkg/auth"
	"gupshup/chat_backend/internal/pkg/cipher"
	"gupshup/chat_backend/internal/pkg/mailer"
	"gupshup/chat_backend/internal/repository"
	"gupshup/chat_backend/internal/service"
)

func Run(cfg *config.Config) {
	db, err := repository.NewDB(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	codec, err := cipher.NewCodec(cfg.InviteSecretKey)
	if err != nil {
		log.Fatal(err)
	}

	tokens := auth.NewTokenManager(cfg.JWTKey)
	mail := mailer.NewSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailUser, cfg.BaseURL)

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	inviteRepo := repository.NewInviteRepository(rdb)
	otpRepo := repository.NewOTPRepository(rdb)
	blacklistRepo := repository.NewBlacklistRepository(rdb)

	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(chatRepo, userRepo, inviteRepo, codec, mail)
	messageService := service.NewMessageService(messageRepo, chatRepo, userRepo, cfg.MessagePageSize)
	authService := service.NewAuthService(userRepo, otpRepo, blacklistRepo, tokens, mail)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, messageService)
	chatHandler := handler.NewChatHandler(chatService, messageService)
	middleware := handler.NewAuthMiddleware(tokens, blacklistRepo)

	server := NewServer(authHandler, userHandler, chatHandler, middleware)
	server.Run(cfg.ServerPort)
}
