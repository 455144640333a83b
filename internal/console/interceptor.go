package console

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
)

// Interceptor is an io.Writer that splits raw game output into lines,
// classifies each one, and reports it through a structured logger. It is
// attached to the spawned game process's stdout and stderr.
type Interceptor struct {
	logger *slog.Logger
	rules  []Rule
	buffer bytes.Buffer
}

// NewInterceptor creates an interceptor reporting through logger.
func NewInterceptor(logger *slog.Logger, rules []Rule) *Interceptor {
	return &Interceptor{
		logger: logger,
		rules:  rules,
	}
}

// Write implements io.Writer. Data is buffered until a newline is seen;
// complete lines are classified and logged. An incomplete trailing line
// stays buffered until more data arrives or Flush is called.
func (in *Interceptor) Write(p []byte) (int, error) {
	n := len(p)
	in.buffer.Write(p)

	for {
		line, err := in.buffer.ReadBytes('\n')
		if err != nil {
			// Incomplete line; push it back and wait for more data.
			in.buffer.Write(line)
			break
		}
		in.emit(strings.TrimRight(string(line), "\r\n"))
	}

	return n, nil
}

// Flush reports any buffered partial line. Called once after the game
// process exits.
func (in *Interceptor) Flush() {
	if in.buffer.Len() == 0 {
		return
	}
	line := in.buffer.String()
	in.buffer.Reset()
	in.emit(line)
}

func (in *Interceptor) emit(line string) {
	if line == "" {
		return
	}
	c := Classify(in.rules, line)
	if c.Suppressed {
		return
	}
	in.logger.Log(context.Background(), c.Level, c.Message, "source", "game")
}
