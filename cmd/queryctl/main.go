package main

import (
	"os"

	"github.com/computerscienceiscool/queryctl/pkg/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
