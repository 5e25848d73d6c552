package main

import "github.com/stoik/leadrelay/services/relay-service/internal/app"

func main() {
	app.Execute()
}
