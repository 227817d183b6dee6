package main

import (
	"os"

	"github.com/johnzilla/cclink/internal/cli"
)

const version = "0.1.0"

func main() {
	os.Exit(cli.Execute(version))
}
