// Command esta-parser parses Esta source files and prints the
// resulting syntax tree in canonical text, JSON, or hash form.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/esta-lang/esta/astfmt"
	"github.com/esta-lang/esta/lexer"
	"github.com/esta-lang/esta/parser"
)

// Exit code constants
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitParseError       = 3
)

var (
	formatFlag string
	checkFlag  bool
	watchFlag  bool
)

func main() {
	root := &cobra.Command{
		Use:           "esta-parser",
		Short:         "Front-end parser for the Esta scripting language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	parseCmd := &cobra.Command{
		Use:   "parse <file.esta>",
		Short: "Parse a source file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runParse(args[0])
		},
	}
	parseCmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text, json, or hash")
	parseCmd.Flags().BoolVar(&checkFlag, "check", false, "validate the JSON encoding against the AST schema")
	parseCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-parse whenever the file changes")

	tokensCmd := &cobra.Command{
		Use:   "tokens <file.esta>",
		Short: "Print the token stream for a source file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runTokens(args[0])
		},
	}

	root.AddCommand(parseCmd, tokensCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitInvalidArguments)
	}
}

func runParse(path string) {
	if watchFlag {
		watchAndParse(path)
		return
	}
	os.Exit(parseOnce(path))
}

// parseOnce parses the file and prints it in the selected format,
// returning a process exit code
func parseOnce(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
		return ExitIOError
	}

	prog, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitParseError
	}

	switch formatFlag {
	case "text":
		fmt.Println(prog.String())

	case "json":
		data, err := astfmt.EncodeJSON(astfmt.Canonical(prog))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error encoding tree: %v\n", err)
			return ExitParseError
		}
		if checkFlag {
			if err := astfmt.ValidateJSON(data); err != nil {
				fmt.Fprintf(os.Stderr, "schema check failed: %v\n", err)
				return ExitParseError
			}
		}
		fmt.Println(string(data))

	case "hash":
		sum, err := astfmt.Canonical(prog).Hash()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing tree: %v\n", err)
			return ExitParseError
		}
		fmt.Println(hex.EncodeToString(sum[:]))

	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want text, json, or hash)\n", formatFlag)
		return ExitInvalidArguments
	}

	return ExitSuccess
}

// watchAndParse re-parses the file on every write until interrupted
func watchAndParse(path string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating watcher: %v\n", err)
		os.Exit(ExitIOError)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		fmt.Fprintf(os.Stderr, "error watching %s: %v\n", path, err)
		os.Exit(ExitIOError)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	parseOnce(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fmt.Fprintf(os.Stderr, "--- %s changed, re-parsing\n", path)
				parseOnce(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-interrupt:
			return
		}
	}
}

func runTokens(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
		os.Exit(ExitIOError)
	}

	lex := lexer.New(source)
	for _, tok := range lex.TokenizeToSlice() {
		fmt.Printf("%d:%d\t%s\t%s\n", tok.Position.Line, tok.Position.Column, tok.Type, tok.Symbol())
	}
	os.Exit(ExitSuccess)
}
