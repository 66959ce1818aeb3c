package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line or
// EOF. The collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(readLines(reader), "\n")), nil
}

// GetList prompts for one entry per line, ending on an empty line. Blank
// entries are never returned.
func GetList(reader *bufio.Reader, prompt string, w io.Writer) ([]string, error) {
	if _, err := fmt.Fprint(w, prompt+" (one per line, empty line to finish)\n"); err != nil {
		return nil, err
	}
	lines := readLines(reader)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out, nil
}

// GetNumber reads a non-negative decimal. An empty answer yields def.
func GetNumber(reader *bufio.Reader, prompt string, def float64, w io.Writer) (float64, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return 0, err
		}
		if s == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
		if err == nil && v >= 0 {
			return v, nil
		}
		fmt.Fprintln(w, "Please enter a non-negative number.")
	}
}

func readLines(reader *bufio.Reader) []string {
	lines := make([]string, 0)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return lines
}
