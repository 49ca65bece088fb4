package main

import (
	"fmt"
	"os"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
