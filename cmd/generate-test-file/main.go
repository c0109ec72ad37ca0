package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

func main() {
	numLines := flag.Int("lines", 1000, "Number of lines to generate")
	output := flag.String("output", "large_test.json", "Output file path")
	depth := flag.Int("depth", 3, "Maximum indent level")
	flag.Parse()

	if *numLines < 1 {
		fmt.Fprintf(os.Stderr, "lines must be at least 1\n")
		os.Exit(1)
	}

	// Ensure directory exists
	dir := filepath.Dir(*output)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
			os.Exit(1)
		}
	}

	lines := generateLines(*numLines, *depth)
	if err := storage.NewJSONStore(*output).Save(model.Snapshot{Lines: lines}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write file: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated document with %d lines\n", len(lines))
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
}

// generateLines builds a balanced tree in document order: every line at
// depth < maxDepth gets a few children before its next sibling
func generateLines(total, maxDepth int) []model.Line {
	lines := make([]model.Line, 0, total)
	for len(lines) < total {
		appendLine(&lines, total, 0, maxDepth)
	}
	return lines
}

func appendLine(lines *[]model.Line, total, indent, maxDepth int) {
	if len(*lines) >= total {
		return
	}
	index := len(*lines)
	*lines = append(*lines, *model.NewLine(generateUniqueText(index), indent))

	if indent >= maxDepth {
		return
	}
	n := childCount(total-len(*lines), maxDepth-indent)
	for i := 0; i < n; i++ {
		appendLine(lines, total, indent+1, maxDepth)
	}
}

func childCount(remaining, depthLeft int) int {
	// Leaf level: create fewer children
	if depthLeft == 1 {
		if remaining > 10 {
			return 5
		}
		return remaining / 2
	}
	if remaining > 50 {
		return 3
	}
	return 2
}

func generateUniqueText(index int) string {
	categories := []string{
		"Task", "Note", "Idea", "Bug", "Feature", "Enhancement",
		"Documentation", "Refactor", "Test", "Optimization",
		"Research", "Design", "Implementation", "Review",
	}
	descriptions := []string{
		"Core functionality", "User interface", "Performance improvement",
		"Bug fix", "New capability", "API integration", "Data validation",
		"Error handling", "Caching layer", "Database schema",
		"Authentication", "Configuration", "Logging system", "Monitoring",
		"Security audit",
	}
	return fmt.Sprintf("%s #%d - %s", categories[index%len(categories)], index,
		descriptions[index%len(descriptions)])
}
