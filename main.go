// Package main is the entry point for the fredline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fredline/fredline/cmd"
	"github.com/fredline/fredline/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
