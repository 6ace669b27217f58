package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/phillip-england/shipdesk/internal/shipdeskcli"
)

func main() {
	if err := shipdeskcli.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, shipdeskcli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			shipdeskcli.PrintUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
