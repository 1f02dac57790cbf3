//go:build gendocs

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"
)

// Generates man pages (default) or markdown for every command:
//
//	go run -tags gendocs ./cmd/actorkey -o man/man1
//	go run -tags gendocs ./cmd/actorkey -o docs/cli -markdown
func main() {
	outputDir := flag.String("o", "man/man1", "output directory")
	markdown := flag.Bool("markdown", false, "generate markdown instead of man pages")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	rootCmd.DisableAutoGenTag = true

	if *markdown {
		if err := doc.GenMarkdownTree(rootCmd, *outputDir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate markdown: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Markdown docs generated in: %s\n", *outputDir)
		return
	}

	header := &doc.GenManHeader{
		Title:   "ACTORKEY",
		Section: "1",
		Source:  "actorkey " + version,
	}
	if err := doc.GenManTree(rootCmd, header, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate man pages: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Man pages generated in: %s\n", *outputDir)
}
