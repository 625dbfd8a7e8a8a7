// Command auditor audits sustainability reports against the TNFD recommended disclosures.
package main

import (
	"os"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
