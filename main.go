package main

import (
	"log"

	"gupshup/chat_backend/internal/app"
	"gupshup/chat_backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app.Run(cfg)
}
