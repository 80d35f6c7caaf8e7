package main

import (
	"os"

	"github.com/andotools/andocheck/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
