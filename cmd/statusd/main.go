package main

import (
	"log"

	"github.com/darrylwest/service-uptime/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ statusd failed to initialize: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ statusd failed: %v", err)
	}
}
