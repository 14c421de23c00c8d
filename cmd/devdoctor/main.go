// Package main provides the entry point for the devdoctor CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/devdoctor/cmd/devdoctor/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
