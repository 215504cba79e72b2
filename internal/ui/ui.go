// Package ui wraps fzf for interactive lecture selection. Items are piped
// to fzf on stdin as plain text — no --preview or shell-evaluated strings.
package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Select shows a lecture picker via fzf and returns the chosen item's index.
// The header (usually the course title) stays visible above the list, and
// course order is preserved while filtering.
func Select(header string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return -1, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	cmd := exec.Command(fzfPath,
		"--prompt", "lecture > ",
		"--header", header,
		"--height", "60%",
		"--layout", "reverse",
		"--with-nth", "2..", // hide the index field
		"--delimiter", "\t",
		"--no-multi",
		"--no-sort", // keep course order while filtering
	)

	cmd.Stdin = strings.NewReader(numberItems(items))
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 130 {
			return -1, fmt.Errorf("selection cancelled")
		}
		return -1, fmt.Errorf("fzf failed: %w", err)
	}

	return parseSelection(stdout.String(), len(items))
}

// numberItems prefixes each item with its index so the index survives
// fzf's filtering.
func numberItems(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d\t%s\n", i, item)
	}
	return b.String()
}

// parseSelection recovers the item index from fzf's selected line.
func parseSelection(out string, n int) (int, error) {
	line := strings.TrimSpace(out)
	field, _, found := strings.Cut(line, "\t")
	if !found {
		return -1, fmt.Errorf("unexpected fzf output %q", line)
	}
	idx, err := strconv.Atoi(field)
	if err != nil || idx < 0 || idx >= n {
		return -1, fmt.Errorf("bad selection index %q", field)
	}
	return idx, nil
}
