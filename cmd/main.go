package main

import (
	"lootbox_backend/internal/app"
	"os"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		os.Exit(1)
	}
}
