package main

import (
	"log"

	"github.com/samuelfneumann/gridvalue/cmd"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gridvalue: ")

	if err := cmd.RootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
