// Command lox runs Lox scripts and hosts the interactive REPL.
//
// Exit codes follow the classic interpreter convention: 0 on success, 65 when
// any compile-time (lexical/syntax) fault was reported, 70 when a runtime
// fault was reported, 130 on interrupt.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/sanity-io/litter"

	lox "github.com/jdmalter/Crafting-Interpreters"
)

const (
	appName     = "lox"
	historyFile = ".lox_history"
	promptMain  = "> "
)

var banner = fmt.Sprintf("Lox %s REPL\nCtrl+C clears the line, Ctrl+D exits.", lox.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl())
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "ast":
		os.Exit(cmdAst(os.Args[2:]))
	case "version":
		fmt.Println(lox.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Lox %s

Usage:
  %s                       Start the REPL.
  %s run <file.lox>        Run a script.
  %s repl                  Start the REPL.
  %s ast [--raw] <file>    Print the parse tree (prefix form, or --raw dump).
  %s version               Print the version

`, lox.Version, appName, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.lox>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	rep := lox.NewReporter(os.Stderr)
	stmts, ok := compile(string(src), rep)
	if !ok {
		return 65
	}

	ip := lox.NewInterpreter()
	if err := ip.Interpret(stmts); err != nil {
		reportRuntime(rep, err)
		return 70
	}
	return 0
}

// compile runs the scan and parse phases. It returns ok=false when any
// compile-time fault was reported; a faulted unit is never interpreted.
func compile(src string, rep *lox.Reporter) ([]lox.Stmt, bool) {
	toks := lox.NewLexer(src, rep).Scan()
	stmts := lox.NewParser(toks, rep).Parse()
	if rep.HadError() {
		return nil, false
	}
	return stmts, true
}

func reportRuntime(rep *lox.Reporter, err error) {
	var rtErr *lox.RuntimeError
	if errors.As(err, &rtErr) {
		rep.Runtime(rtErr)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// redWriter paints everything written through it red. The REPL routes its
// diagnostics here so they stand apart from program output.
type redWriter struct{ w io.Writer }

func (rw redWriter) Write(p []byte) (int, error) {
	if _, err := fmt.Fprint(rw.w, red(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func cmdRepl() int {
	fmt.Println(blue(banner))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	// One session: the global frame accumulates bindings across inputs.
	ip := lox.NewInterpreter()
	rep := lox.NewReporter(redWriter{w: os.Stderr})

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		// A bad line must not poison the next one; bindings survive anyway.
		rep.ResetError()
		stmts, ok := compile(line, rep)
		if !ok {
			continue
		}
		if err := ip.Interpret(stmts); err != nil {
			reportRuntime(rep, err)
		}
	}
}

// -----------------------------------------------------------------------------
// ast
// -----------------------------------------------------------------------------

func cmdAst(args []string) int {
	raw := false
	if len(args) > 0 && args[0] == "--raw" {
		raw = true
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s ast [--raw] <file.lox>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	rep := lox.NewReporter(os.Stderr)
	stmts, ok := compile(string(src), rep)
	if !ok {
		return 65
	}

	if raw {
		litter.Dump(stmts)
		return 0
	}

	pr := &lox.AstPrinter{}
	for _, s := range stmts {
		fmt.Println(pr.PrintStmt(s))
	}
	return 0
}
