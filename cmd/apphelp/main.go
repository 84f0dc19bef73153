package main

import (
	"os"

	"github.com/jroosing/apphelpers/internal/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
