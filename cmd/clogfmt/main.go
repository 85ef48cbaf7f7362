package main

import (
	"os"

	"github.com/ariel-frischer/clogfmt/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
