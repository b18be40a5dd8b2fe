package main

import (
	"fmt"
	"os"

	"github.com/pageza/recipe-realm/backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "realmctl:", err)
		os.Exit(1)
	}
}
