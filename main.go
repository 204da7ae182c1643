package main

import (
	"os"

	"github.com/dongqi-wu/reisego/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
