// Command r6 loads Scheme files and runs an interactive
// read-eval-print loop.
//
//	r6 [-e expr] [-debug] [-max-depth n] [file ...] [-]
//
// Files are loaded in order. With no file, or with - as the last
// argument, the read-eval-print loop follows.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/nukata/r6-scheme-in-go/datum"
	"github.com/nukata/r6-scheme-in-go/reader"
	"github.com/nukata/r6-scheme-in-go/runtime"
)

const historyFile = ".r6_history"

// Load loads a source code from a file.
func Load(in *runtime.Interpreter, fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	return evalAll(in, file, nil)
}

// evalAll evaluates every datum read from src, printing each non-void
// result to out if out is not nil.
func evalAll(in *runtime.Interpreter, src io.Reader, out io.Writer) error {
	r, err := reader.NewReader(src)
	if err != nil {
		return err
	}
	for {
		exp, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		result, err := in.Eval(exp)
		if err != nil {
			return err
		}
		if out != nil && result != runtime.Void {
			fmt.Fprintln(out, datum.Stringify(result, true))
		}
	}
}

// ReadExpression reads lines until they hold complete expressions.
// It reports false at end of input.
func ReadExpression(ln *liner.State, prompt1, prompt2 string) (string, bool) {
	var b strings.Builder
	for {
		prompt := prompt1
		if b.Len() != 0 {
			prompt = prompt2
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil { // Ctrl-C drops the pending input.
			return "", true
		}
		if b.Len() != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if _, err := reader.ReadAll(strings.NewReader(src)); errors.Is(err, reader.ErrIncomplete) {
			continue
		}
		return src, true
	}
}

// ReadEvalPrintLoop repeats read-eval-print until End-Of-File.
func ReadEvalPrintLoop(in *runtime.Interpreter) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := ReadExpression(ln, "> ", "| ")
		if !ok {
			fmt.Println("Goodbye")
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if err := evalAll(in, strings.NewReader(src), os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "*** "+err.Error())
		}
	}
}

func main() {
	expr := flag.String("e", "", "evaluate `expr` and print its value")
	debug := flag.Bool("debug", false, "log evaluation to stderr")
	maxDepth := flag.Int("max-depth", 0, "bound the recursion depth (0 means unbounded)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file ...] [-]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	in := runtime.New(runtime.WithLogger(logger), runtime.WithMaxDepth(*maxDepth))

	files := flag.Args()
	repl := len(files) == 0 && *expr == ""
	if n := len(files); n != 0 && files[n-1] == "-" {
		files, repl = files[:n-1], true
	}
	for _, name := range files {
		if err := Load(in, name); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}
	}
	if *expr != "" {
		if err := evalAll(in, strings.NewReader(*expr), os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if repl {
		ReadEvalPrintLoop(in)
	}
}
