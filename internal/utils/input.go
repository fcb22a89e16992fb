package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// InputUtils reads answers to interactive questions.
type InputUtils struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewInputUtils(in io.Reader, out io.Writer) *InputUtils {
	return &InputUtils{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// StdInput prompts on stdout and reads from stdin.
func StdInput() *InputUtils {
	return NewInputUtils(os.Stdin, os.Stdout)
}

// Confirm asks message and reports whether the answer was exactly "Y".
// A closed input counts as a refusal.
func (i *InputUtils) Confirm(message string) (bool, error) {
	fmt.Fprintf(i.out, "%s (Y/n)? ", message)

	response, err := i.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(response) == "Y", nil
}
