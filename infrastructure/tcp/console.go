package tcp

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// Console adapts stdin/stdout (or any reader/writer pair) to the operator
// console collaborator.
type Console struct {
	scanner *bufio.Scanner

	printMu sync.Mutex
	out     io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ReadLine blocks until the operator enters a line; io.EOF once input ends.
func (c *Console) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

func (c *Console) Print(line string) {
	c.printMu.Lock()
	defer c.printMu.Unlock()
	fmt.Fprintln(c.out, line)
}
