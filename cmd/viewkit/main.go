package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/viewkit/cmd/viewkit/commands"
)

const version = "0.1.0"

func main() {
	if err := commands.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
