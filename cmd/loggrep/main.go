// loggrep - Timestamp-aware log search
//
// loggrep searches log files (or a live stream on stdin) for regex
// patterns, restricting matches to lines at or after a reference instant
// detected from the log's own timestamps.
package main

import (
	"os"

	"loggrep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
