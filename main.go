// Package main is the entry point for the regionodds CLI tool, which
// simulates remaining region games and computes playoff finish odds for
// high-school football regions.
package main

import "github.com/cmorgan/go-region-odds/cmd"

func main() {
	cmd.Execute()
}
