// Command tabletalk answers questions about a CSV knowledge source.
package main

import (
	"fmt"
	"os"

	"github.com/tabletalk-labs/tabletalk-cli/internal/adapters/driven/config/file"
	"github.com/tabletalk-labs/tabletalk-cli/internal/adapters/driving/cli"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/services"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabletalk: %v\n", err)
		os.Exit(1)
	}

	cli.SetVersion(version)
	cli.SetSettingsService(services.NewSettingsService(configStore))

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
