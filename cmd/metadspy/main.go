// Command metadspy validates, builds and inspects declarative agent module
// documents.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(&app{}, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
