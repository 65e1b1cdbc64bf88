package main

import (
	"log"
	"time"

	"gupshup/chat_backend/internal/config"
	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	userCount    = 20
	groupCount   = 5
	messageCount = 10
)

// Наполняет базу фейковыми пользователями, чатами и сообщениями
// для ручного тестирования.
func main() {
	gofakeit.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := repository.NewDB(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	users := make([]*model.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := &model.User{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
			About: gofakeit.Quote(),
			Image: gofakeit.ImageURL(200, 200),
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	for i := 0; i < groupCount; i++ {
		creator := users[gofakeit.Number(0, len(users)-1)]

		chat := &model.Chat{
			Name:        gofakeit.NounAbstract() + " club",
			Description: gofakeit.Sentence(6),
			Image:       gofakeit.ImageURL(200, 200),
			Type:        model.ChatTypeGroup,
		}

		members := []model.UserChat{{UserID: creator.ID, IsAdmin: true}}
		for _, user := range users {
			if user.ID == creator.ID {
				continue
			}
			if gofakeit.Bool() {
				members = append(members, model.UserChat{UserID: user.ID, IsAdmin: false})
			}
		}

		if err := chatRepo.CreateWithMembers(chat, members); err != nil {
			log.Fatalf("failed to seed chat: %v", err)
		}

		for j := 0; j < messageCount; j++ {
			author := members[gofakeit.Number(0, len(members)-1)]
			text := gofakeit.HackerPhrase()
			msg := &model.Message{
				ChatID:  chat.ID,
				UserID:  author.UserID,
				Message: &text,
			}
			if err := messageRepo.Create(msg); err != nil {
				log.Fatalf("failed to seed message: %v", err)
			}
		}

		log.Printf("seeded chat %q with %d members", chat.Name, len(members))
	}
}
