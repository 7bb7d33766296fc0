package main

import "album-backend/internal/app"

func main() {
	app.Run()
}
