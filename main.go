// Package main is the entry point for the hllstats CLI tool, which replays
// Hell Let Loose server log events and computes player/match statistics.
package main

import "github.com/Soxxes/HLLLogUtilities/cmd"

func main() {
	cmd.Execute()
}
