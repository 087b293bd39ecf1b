package main

import (
	"os"

	"birthday_notifier/cmd/notifier/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
