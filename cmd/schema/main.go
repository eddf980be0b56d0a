// Command schema writes the composite prototype schema artifact consumed by
// editor tooling.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"protoforge/gamedata"
	"protoforge/prototype"
	"protoforge/schema"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", filepath.Join(".vscode", "prototypes.schema.json"), "path to write the JSON schema")
	flag.Parse()

	table := prototype.NewTable()
	gamedata.MustRegister(table)

	if err := schema.Write(outPath, schema.Generate(table)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}
