package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"mojiport/internal/cli"
	appErrors "mojiport/internal/errors"
)

func main() {
	// Credentials usually live in a local .env rather than in shell history.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
