package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// errCancelled is returned when input ends in the middle of a prompt.
var errCancelled = errors.New("input cancelled")

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The surrounding whitespace is trimmed. If EOF occurs after some input was
// read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errCancelled
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the terminal fd
// without echo. A newline is printed after the read to keep the UI tidy.
func GetPassword(fd int, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *App) prompt(label string) (string, error) {
	return GetSimpleText(a.reader, label, a.out)
}

// promptSecret reads without echo on a terminal, and a plain line otherwise
// (piped input). Only the line terminator is stripped.
func (a *App) promptSecret(label string) (string, error) {
	if a.isTerminal(a.stdinFd) {
		return GetPassword(a.stdinFd, label, a.out)
	}
	if _, err := fmt.Fprint(a.out, label+": "); err != nil {
		return "", err
	}
	line, err := a.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errCancelled
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
