// Command schemactl emits create, drop and change scripts for catalogs
// described in YAML definition files.
package main

import (
	"fmt"
	"os"

	"schemacore/pkg/logging"
)

func main() {
	err := newRootCommand().Execute()
	_ = logging.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
