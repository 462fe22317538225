package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/rdpgen/cmd/rdpgen"
	"github.com/arthur-debert/rdpgen/internal/version"
)

func main() {
	rootCmd := rdpgen.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "RDPGEN",
		Section: "1",
		Source:  "rdpgen " + version.Version,
		Manual:  "rdpgen manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
