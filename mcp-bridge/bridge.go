package main

import (
	"log"
	"os"

	bridge "github.com/viant/mcp-bridge"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
