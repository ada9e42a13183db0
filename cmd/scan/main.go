// Command scan scans Latin verse read from files or standard input and
// prints each line with its scansion.
//
//	scan [flags] [file ...]
//
// With no file, or with "-", lines are read from standard input. Blank
// lines and lines starting with "#" are skipped.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
