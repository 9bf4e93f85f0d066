package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/mdreplace/pkg/findreplace"
	"github.com/walteh/mdreplace/pkg/text"
)

func ExampleTreeTextReplacer_ReplaceText() {
	// Create a replacer
	replacer := text.NewTreeTextReplacer()

	// Define some replacement rules
	rules := findreplace.List(
		[2]any{"World", "Universe"},
		[2]any{"Hello", "Hi"},
	)

	// Create some content
	content := strings.NewReader("Hello World!")

	// Apply replacements
	result, err := replacer.ReplaceText(context.Background(), content, rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// Print results
	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: Hello World!
	// Modified: Hi Universe!
	// Changes: 2
	// Was Modified: true
}
