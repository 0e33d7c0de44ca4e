package main

import (
	"log"

	"github.com/hiredeck/hiredeck/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ hiredeck failed to start: %v", err)
	}
}
