package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/sortviz/pkg/export"
)

// main checks that an exported trace file is well formed: aligned arrays,
// equal-length snapshots and a completion step that sorts every index.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <trace-file.{json,yaml,msgpack}>\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]

	format, err := formatFromExt(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	payload, err := export.Decode(f, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing trace: %v\n", err)
		os.Exit(1)
	}

	t, err := payload.Trace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := t.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := append([]int(nil), t.Result()...)
	if !sort.IntsAreSorted(result) {
		fmt.Fprintf(os.Stderr, "Error: final snapshot is not sorted: %v\n", result)
		os.Exit(1)
	}

	name := string(t.Algorithm)
	if name == "" {
		name = "unknown algorithm"
	}
	fmt.Printf("✓ Trace for %s is valid\n", name)
	fmt.Printf("  - Steps: %d\n", t.Len())
	fmt.Printf("  - Values: %d\n", len(t.First().Snapshot))
	if payload.RunID != "" {
		fmt.Printf("  - Run: %s\n", payload.RunID)
	}
}

func formatFromExt(path string) (export.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return export.FormatJSON, nil
	case ".yaml", ".yml":
		return export.FormatYAML, nil
	case ".msgpack", ".mp":
		return export.FormatMsgpack, nil
	default:
		return "", fmt.Errorf("cannot infer format from extension %q", filepath.Ext(path))
	}
}
