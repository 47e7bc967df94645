package client

import (
	"encoding/json"
	"strings"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/zerr"
)

// EntryFunc implements one entry point. args are the raw JSON arguments of the call.
type EntryFunc func(args []json.RawMessage) error

// Interpreter executes coordinator payloads: newline-separated `entry(arg, ...);` statements
// whose arguments are JSON values.
type Interpreter struct {
	entries map[string]EntryFunc
}

// NewInterpreter creates an Interpreter with no entry points.
func NewInterpreter() *Interpreter {
	return &Interpreter{entries: make(map[string]EntryFunc)}
}

// Register binds name to fn, replacing any previous binding.
func (i *Interpreter) Register(name string, fn EntryFunc) {
	i.entries[name] = fn
}

// Eval runs every statement in code in order and stops at the first failure.
func (i *Interpreter) Eval(code string) error {
	for n, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, args, err := parseCall(line)
		if err != nil {
			return zerr.With(err, "line", n+1)
		}
		fn, ok := i.entries[name]
		if !ok {
			return zerr.With(domain.ErrUnknownEntryPoint, "entry", name)
		}
		if err := fn(args); err != nil {
			return zerr.With(err, "entry", name)
		}
	}
	return nil
}

func parseCall(stmt string) (string, []json.RawMessage, error) {
	open := strings.IndexByte(stmt, '(')
	if open <= 0 || !strings.HasSuffix(stmt, ");") {
		return "", nil, domain.ErrMalformedPayload
	}
	name := stmt[:open]
	body := stmt[open+1 : len(stmt)-2]

	var args []json.RawMessage
	if err := json.Unmarshal([]byte("["+body+"]"), &args); err != nil {
		return "", nil, zerr.Wrap(err, domain.ErrMalformedPayload.Error())
	}
	return name, args, nil
}

// decodeArgs unmarshals args positionally into dst. It fails on an arity mismatch.
func decodeArgs(args []json.RawMessage, dst ...any) error {
	if len(args) != len(dst) {
		return zerr.With(zerr.With(domain.ErrMalformedPayload, "want_args", len(dst)), "got_args", len(args))
	}
	for i := range dst {
		if err := json.Unmarshal(args[i], dst[i]); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrMalformedPayload.Error()), "arg", i)
		}
	}
	return nil
}
