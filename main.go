package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Ethernal-Tech/bridge-status-tracker/cli"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, BST_ variables can come from the environment as well
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)

		os.Exit(1)
	}

	cli.NewRootCommand().Execute()
}
