package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	aether "github.com/twiborg/programminglanguage.AetheR"
)

const (
	appName     = "aether"
	historyFile = ".aether_history"
	promptMain  = "==> "
)

var (
	errColor = color.New(color.FgRed)
	okColor  = color.New(color.FgGreen)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "version":
		fmt.Println(aether.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`AetheR %s

Usage:
  %s run <file.aer>       Run a program.
  %s repl                 Start the REPL.
  %s fmt [--check] <file> Reprint a program in canonical form.
  %s version              Print the version.

`, aether.Version, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.aer>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	if err := aether.Run(string(src), func(s string) { fmt.Println(s) }); err != nil {
		errColor.Fprintln(os.Stderr, aether.WrapErrorWithSource(err, string(src)))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Printf("AetheR %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", aether.Version)

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
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
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

	// One interpreter for the whole session: definitions persist.
	ip := aether.NewInterpreter()
	ip.SetOutput(func(s string) { fmt.Println(s) })

	for {
		code, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			errColor.Fprintln(os.Stderr, err)
			return 1
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return 0
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		prog, perr := aether.ParseSource(code)
		if perr != nil {
			errColor.Fprintln(os.Stderr, perr)
			continue
		}
		if rerr := ip.Interpret(prog); rerr != nil {
			errColor.Fprintln(os.Stderr, rerr)
			continue
		}
		ln.AppendHistory(code)
	}
}

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func cmdFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	check := fs.Bool("check", false, "exit 1 if the file is not in canonical form")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s fmt [--check] <file.aer>\n", appName)
		return 2
	}
	file := fs.Arg(0)

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	prog, perr := aether.ParseSource(string(src))
	if perr != nil {
		errColor.Fprintln(os.Stderr, aether.WrapErrorWithSource(perr, string(src)))
		return 1
	}

	formatted := aether.FormatProgram(prog)
	if *check {
		if formatted != string(src) {
			fmt.Fprintf(os.Stderr, "%s: %s is not formatted\n", appName, file)
			return 1
		}
		okColor.Fprintf(os.Stderr, "%s: %s ok\n", appName, file)
		return 0
	}
	fmt.Print(formatted)
	return 0
}
