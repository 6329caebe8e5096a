package interp

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// preprocessWatchdog bounds a single preprocess evaluation.
const preprocessWatchdog = time.Second

// ScriptPreprocess compiles a JavaScript expression into a transcript
// preprocess filter. The expression sees the normalized transcript as `text`
// and its result replaces it:
//
//	text.toUpperCase()
//	text.replace(/\t/g, "    ")
//
// A fresh runtime is created per call so filters cannot accumulate state
// across evaluation runs. A filter that throws or times out leaves the
// transcript unchanged.
func ScriptPreprocess(expr string) (func(string) string, error) {
	prog, err := goja.Compile("preprocess", expr, true)
	if err != nil {
		return nil, fmt.Errorf("%w: preprocess: %v", ErrInvalidDescriptor, err)
	}

	return func(text string) string {
		vm := goja.New()
		if err := vm.Set("text", text); err != nil {
			return text
		}

		watchdog := time.AfterFunc(preprocessWatchdog, func() {
			vm.Interrupt("preprocess timeout")
		})
		defer watchdog.Stop()

		val, err := vm.RunProgram(prog)
		if err != nil || val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
			return text
		}
		return val.String()
	}, nil
}
