// Package host executes emitted bundles in an embedded JavaScript engine.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"
)

// ScriptName is the file name reported in stack traces.
const ScriptName = "bundle.js"

// Options configure where console output goes. Nil writers discard output.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
}

// ExecError is an uncaught exception thrown by the executed program.
type ExecError struct {
	Message string
	Stack   string
}

func (e *ExecError) Error() string {
	return "uncaught exception: " + e.Message
}

// Run executes program to completion. Cancelling ctx interrupts the VM.
func Run(ctx context.Context, program string, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	vm := goja.New()
	if err := installConsole(vm, writerOrDiscard(opts.Stdout), writerOrDiscard(opts.Stderr)); err != nil {
		return fmt.Errorf("failed to install console: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	_, err := vm.RunScript(ScriptName, program)
	if err == nil {
		return nil
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return &ExecError{Message: exception.Value().String(), Stack: exception.String()}
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Errorf("execution interrupted: %w", context.Cause(ctx))
	}
	return err
}

// installConsole provides console.log/info/debug on stdout and
// console.warn/error on stderr, joining arguments with spaces.
func installConsole(vm *goja.Runtime, stdout, stderr io.Writer) error {
	console := vm.NewObject()

	printer := func(w io.Writer) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			fmt.Fprintln(w, strings.Join(parts, " "))
			return goja.Undefined()
		}
	}

	for name, w := range map[string]io.Writer{
		"log":   stdout,
		"info":  stdout,
		"debug": stdout,
		"warn":  stderr,
		"error": stderr,
	} {
		if err := console.Set(name, printer(w)); err != nil {
			return err
		}
	}
	return vm.Set("console", console)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
