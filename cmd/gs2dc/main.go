// cmd/gs2dc/main.go
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"gs2dc/internal/batch"
	"gs2dc/internal/dotrender"
	"gs2dc/internal/emitter"
	"gs2dc/internal/function"
	"gs2dc/internal/loader"
	"gs2dc/internal/store"
	"gs2dc/internal/structural"
)

const VERSION = "0.1.0"

// commandAliases mirrors the teacher CLI's short-form aliases.
var commandAliases = map[string]string{
	"d": "decompile",
	"g": "dot",
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the whole CLI and returns a process exit code. It is
// split out of main so a testscript harness can register it as a virtual
// "gs2dc" command without re-execing a built binary.
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 0
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
		args[0] = alias
	}

	if cmd == "--help" || cmd == "-h" || cmd == "help" {
		showUsage()
		return 0
	}
	if cmd == "--version" || cmd == "-v" || cmd == "version" {
		fmt.Printf("gs2dc %s\n", VERSION)
		return 0
	}

	switch cmd {
	case "decompile":
		if err := decompileCommand(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	case "dot":
		if err := dotCommand(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		showUsage()
		return 1
	}
	return 0
}

func showUsage() {
	fmt.Print(`gs2dc - GS2 bytecode decompiler

Usage:
  gs2dc decompile <file.gs2> [flags]
  gs2dc dot <file.gs2> --function <name>
  gs2dc help
  gs2dc version

decompile flags:
  --function <name>   decompile only the named function (default: all)
  --cache <dsn>        SQLite DSN for the decompile-result cache (default: none)
  --jobs <n>           max concurrent function decompiles (default: 0, unbounded)
  --no-color           disable ANSI highlighting even on a terminal
`)
}

type flags struct {
	function string
	cacheDSN string
	jobs     int
	noColor  bool
}

func parseFlags(args []string) (flags, []string) {
	var f flags
	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--function":
			i++
			if i < len(args) {
				f.function = args[i]
			}
		case "--cache":
			i++
			if i < len(args) {
				f.cacheDSN = args[i]
			}
		case "--jobs":
			i++
			if i < len(args) {
				fmt.Sscanf(args[i], "%d", &f.jobs)
			}
		case "--no-color":
			f.noColor = true
		default:
			positional = append(positional, args[i])
		}
	}
	return f, positional
}

// wantsColor decides whether printSource puts an ANSI-dimmed `// name`
// header line before each function's source: only when stdout is a
// terminal and the caller didn't opt out. The source text itself is not
// colored.
func wantsColor(noColor bool) bool {
	return !noColor && isatty.IsTerminal(os.Stdout.Fd())
}

func decompileCommand(args []string) error {
	f, positional := parseFlags(args)
	if len(positional) < 1 {
		return fmt.Errorf("usage: gs2dc decompile <file.gs2> [flags]")
	}

	moduleBytes, err := os.ReadFile(positional[0])
	if err != nil {
		return fmt.Errorf("read module: %w", err)
	}
	m, err := loader.BuildModule(readerOf(moduleBytes))
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	fns := function.BuildFunctions(m)

	if f.function != "" {
		fn, ok := fns[f.function]
		if !ok {
			return fmt.Errorf("no function named %q in module", f.function)
		}
		fns = map[string]*function.Function{f.function: fn}
	}

	ctx := context.Background()
	var cache *store.Store
	if f.cacheDSN != "" {
		cache, err = store.Open(ctx, store.SQLite, f.cacheDSN)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer cache.Close()
	}

	emitCtx := emitter.DefaultContext()
	em := emitter.New(emitCtx)

	results, err := batch.Run(ctx, fns, structural.DefaultOptions(), f.jobs)
	if err != nil {
		return fmt.Errorf("batch decompile: %w", err)
	}

	highlight := wantsColor(f.noColor)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "// %s: decompile failed: %v\n", r.FunctionName, r.Err)
			continue
		}

		var cacheKey string
		if cache != nil {
			cacheKey = cache.Key(moduleBytes, r.FunctionName, emitCtx)
			if cached, ok, cerr := cache.Get(ctx, cacheKey); cerr == nil && ok {
				printSource(r.FunctionName, cached, highlight)
				continue
			}
		}

		source := em.EmitFunction(r.AST)
		if cache != nil {
			if perr := cache.Put(ctx, cacheKey, source); perr != nil {
				fmt.Fprintf(os.Stderr, "// %s: cache put failed: %v\n", r.FunctionName, perr)
			}
		}
		printSource(r.FunctionName, source, highlight)
	}
	return nil
}

func printSource(name, source string, highlight bool) {
	if !highlight {
		fmt.Println(source)
		return
	}
	fmt.Printf("\x1b[2m// %s\x1b[0m\n%s\n", name, source)
}

func dotCommand(args []string) error {
	f, positional := parseFlags(args)
	if len(positional) < 1 || f.function == "" {
		return fmt.Errorf("usage: gs2dc dot <file.gs2> --function <name>")
	}

	moduleBytes, err := os.ReadFile(positional[0])
	if err != nil {
		return fmt.Errorf("read module: %w", err)
	}
	m, err := loader.BuildModule(readerOf(moduleBytes))
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	fns := function.BuildFunctions(m)
	fn, ok := fns[f.function]
	if !ok {
		return fmt.Errorf("no function named %q in module", f.function)
	}

	fmt.Println(dotrender.Function(fn))
	return nil
}

// BuildDate can be overridden at link time with -ldflags, matching the
// teacher CLI's build-stamp convention.
var BuildDate string

func readerOf(b []byte) *bytes.Reader { return bytes.NewReader(b) }
