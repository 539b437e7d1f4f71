// Command catalogcheck validates assessment definition files before they are
// published. Run it in CI against the authoring directory; a non-zero exit
// means at least one definition violates the catalog invariants.
package main

import (
	"flag"
	"fmt"
	"os"

	"mindhaven/internal/catalog"
)

func main() {
	dir := flag.String("dir", "", "directory of definition YAML files to check in addition to the built-in catalog")
	flag.Parse()

	cat, err := catalog.Load(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogcheck: %v\n", err)
		os.Exit(1)
	}

	for _, def := range cat.List() {
		fmt.Printf("ok  %-20s v%d  %s  max=%d  questions=%d\n",
			def.ID, def.Version, def.Category, def.MaxPossibleScore(), len(def.Questions))
	}
	fmt.Printf("%d definitions valid\n", cat.Len())
}
