// Command migrate inspects and upgrades a Vinco Wealth store outside the app.
package main

import (
	"os"

	"vincowealth/internal/logger"
)

func main() {
	logger.Init(os.Getenv("VINCO_ENV"))
	defer logger.Sync()

	root := newRootCmd(os.Stdout)
	root.SetErr(os.Stderr)
	if err := root.Execute(); err != nil {
		logger.Named("migrate").Fatalf("Migration error: %v", err)
	}
}
