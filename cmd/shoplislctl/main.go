// Command shoplislctl runs operator tasks against a shoplisl database.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
