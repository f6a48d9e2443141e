// Command circuitc compiles RV32IM programs into boolean circuits and
// checks two circuits for combinational equivalence.
//
// Usage:
//
//	circuitc compile [-m ultra|simple|secure] [--dedup] [-o circuit-file] <program>
//	circuitc equiv <circuit-A> <circuit-B>
//
// Exit codes: 0 success (compile) or UNSAT/equivalent (equiv); 1
// compilation error; 2 SAT/counterexample found; 3 solver timeout/unknown.
package main

import (
	"fmt"
	"os"

	"github.com/eth2030/riscv-circuit-compiler/circuit"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. It accepts CLI
// arguments (without the program name) so it can be tested in isolation.
// An *circuit.InvariantError panic from library code is recovered here,
// reported as a diagnostic, and turned into exit code 1; any other panic
// propagates.
func run(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*circuit.InvariantError)
			if !ok {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "circuitc: internal error: %v\n", ie)
			code = 1
		}
	}()

	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "compile":
		return runCompile(args[1:])
	case "equiv":
		return runEquiv(args[1:])
	case "-h", "--help", "help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "circuitc: unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  circuitc compile [-m ultra|simple|secure] [--dedup] [-o circuit-file] <program>")
	fmt.Fprintln(os.Stderr, "  circuitc equiv <circuit-A> <circuit-B>")
}
