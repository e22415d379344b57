// Command usagedump resolves definition-to-usage mappings for one target
// file and prints them. Debugging aid for the resolver; the MCP server is
// the real surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/veralabs/method-critic/internal/usage"
)

func main() {
	root := flag.String("root", ".", "repository root directory")
	target := flag.String("target", "", "target Python file")
	seed := flag.Int64("seed", -1, "sampling seed (-1 for random)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *target == "" {
		fmt.Fprintln(os.Stderr, "usage: usagedump -root <dir> -target <file.py> [-seed N]")
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	resolver, err := usage.NewResolver(*root, *target)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer resolver.Close()

	if *seed >= 0 {
		resolver.SetSampler(usage.NewSeededSampler(uint64(*seed)))
	}

	if err := resolver.ParseTargetFile(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := resolver.ParseRepoFiles(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	usages := resolver.Usages()
	if len(usages) == 0 {
		fmt.Println("no usages found")
		return
	}

	for _, sn := range resolver.Snippets(usages) {
		fmt.Printf("=== %s (%s)\n", sn.ID.String(), sn.FilePath)
		fmt.Println(sn.Definition)
		for i, u := range sn.Usages {
			fmt.Printf("--- usage %d\n%s\n", i+1, u)
		}
		fmt.Println()
	}
}
