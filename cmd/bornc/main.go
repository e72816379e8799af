// Package main provides the bornc compiler CLI.
package main

import (
	"fmt"
	"os"

	"github.com/born-ml/bornc/internal/nodes"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("bornc %s\n", version)
		return
	}

	fmt.Println("bornc - ahead-of-time ONNX graph to C compiler")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Supported operators:")
	for _, op := range nodes.NewRegistry().SupportedOps() {
		fmt.Printf("  %s\n", op)
	}
}
