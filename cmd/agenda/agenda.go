package main

import (
	"log"

	"github.com/joho/godotenv"

	"tableflip.dev/agenda/pkg/commands"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
