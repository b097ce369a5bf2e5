// Command tss inspects terminal stylesheets: it checks them for errors,
// resolves the style of a node, and lists themes and variables.
package main

import (
	"os"

	"bennypowers.dev/tss/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
