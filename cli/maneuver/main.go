// Package main is the CLI command itself.
package main

import (
	"log"
	"os"

	mancli "go.viam.com/maneuver/cli"
)

func main() {
	if err := mancli.NewApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
