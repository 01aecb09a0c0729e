package session

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// AppendLine appends one input line to the interactive recall file.
func AppendLine(path, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open line history: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to append line history: %w", err)
	}
	return nil
}

// LoadLines reads the recall file, returning at most the last max lines.
// A missing file is an empty history, not an error.
func LoadLines(path string, max int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read line history: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan line history: %w", err)
	}

	if max > 0 && len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines, nil
}
