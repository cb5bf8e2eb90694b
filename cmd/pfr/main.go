package main

import (
	"os"

	"github.com/KyussCaesar/pfr/internal/commands"
)

func main() {
	os.Exit(commands.Run(os.Args[1:], os.Stdout))
}
