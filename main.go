package main

import (
	"os"

	"github.com/mkeenan750/snapcourse/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
