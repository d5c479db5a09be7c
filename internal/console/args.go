package console

import (
	"errors"
	"fmt"

	"github.com/mattn/go-shellwords"
)

var (
	errUnterminatedQuote = errors.New("unterminated quote")
	errShellOperator     = errors.New("shell operators are not supported")
)

// splitArgs splits a command line into words the way a shell would. Double or
// single quotes group words into a single argument ("Push Day"). Environment
// variables and backticks are left alone.
func splitArgs(line string) ([]string, error) {
	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false

	args, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUnterminatedQuote, err)
	}
	// Parse stops at ; & | < > and records where.
	if parser.Position >= 0 {
		return nil, errShellOperator
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args, nil
}
