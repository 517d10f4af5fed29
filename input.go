package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// TextInput provides shared input resolution (arg, file, stdin, pipe).
// Embedded in ParseCmd and AddCmd.
type TextInput struct {
	Text  string `arg:"" optional:"" help:"Event text, e.g. \"Dentist next friday at 9am\"."`
	File  string `help:"Read text from a file." short:"F" type:"existingfile"`
	Stdin bool   `help:"Force reading text from stdin."`
}

// Resolve returns the input text, checking arg -> file -> stdin flag -> piped stdin.
func (in *TextInput) Resolve() (string, error) {
	// 1. Positional argument.
	if in.Text != "" {
		return in.Text, nil
	}

	// 2. --file flag.
	if in.File != "" {
		return readFile(in.File)
	}

	// 3. --stdin flag.
	if in.Stdin {
		return readStdin()
	}

	// 4. Detect piped stdin (not a terminal).
	fi, err := os.Stdin.Stat()
	if err == nil && (fi.Mode()&os.ModeCharDevice) == 0 {
		return readStdin()
	}

	// 5. No text provided.
	return "", newCLIError(ExitInvalidInput, "empty_input",
		"No text provided. Pass text as an argument, --file, or pipe via stdin.")
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path via CLI flag
	if err != nil {
		return "", newCLIError(ExitRuntimeError, "read_file_failed",
			fmt.Sprintf("Failed to read file %q: %s", path, err))
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return "", newCLIError(ExitInvalidInput, "empty_input",
			fmt.Sprintf("File %q is empty.", path))
	}
	return text, nil
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return "", newCLIError(ExitInvalidInput, "empty_input",
			"No text provided (stdin was empty).")
	}
	return text, nil
}
