// Command slrename renames files in Simulink-style projects and keeps
// their references consistent.
package main

import (
	"os"

	"github.com/slrename/slrename/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
