package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"pseudocode/interpreter-go/pkg/diagnostics"
	"pseudocode/interpreter-go/pkg/driver"
	"pseudocode/interpreter-go/pkg/interpreter"
	"pseudocode/interpreter-go/pkg/parser"
)

const cliToolVersion = "pseudo 0.1.0-dev"

// streams are the process's standard files, swapped out by tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return runWith(args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func runWith(args []string, s streams) int {
	if len(args) == 0 {
		printUsage(s.err)
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(s.out)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(s.out, cliToolVersion)
		return 0
	case "run":
		return runProgram(args[1:], s)
	case "check":
		return runCheck(args[1:], s)
	case "tokens":
		return runTokens(args[1:], s)
	case "fetch":
		return runFetch(args[1:], s)
	default:
		if looksLikePathCandidate(args[0]) {
			return runProgram(args, s)
		}
		fmt.Fprintf(s.err, "unknown command %q\n", args[0])
		printUsage(s.err)
		return 1
	}
}

type runOptions struct {
	input         string
	maxIterations int
	seed          int64
	seedSet       bool
	verbose       bool
	gitURL        string
	rev           string
}

func runProgram(args []string, s streams) int {
	var opts runOptions
	fs := flag.NewFlagSet("pseudo run", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.StringVar(&opts.input, "input", "", "file of input lines (overrides the manifest)")
	fs.IntVar(&opts.maxIterations, "max-iterations", 0, "per-loop iteration ceiling")
	fs.Func("seed", "seed for RANDOM()", func(v string) error {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		opts.seed, opts.seedSet = seed, true
		return nil
	})
	fs.BoolVar(&opts.verbose, "verbose", false, "log interpreter events to stderr")
	fs.StringVar(&opts.gitURL, "git", "", "fetch the exercise repository before running")
	fs.StringVar(&opts.rev, "rev", "", "revision to check out with --git")
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return 1
	}
	if len(positional) != 1 {
		fmt.Fprintln(s.err, "pseudo run requires exactly one source file or manifest program")
		return 1
	}

	logger := newLogger(s.err, opts.verbose)
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(s.err, "resolve working directory: %v\n", err)
		return 1
	}
	if opts.gitURL != "" {
		checkout, commit, err := fetchInto(opts.gitURL, opts.rev)
		if err != nil {
			fmt.Fprintf(s.err, "%v\n", err)
			return 1
		}
		logger.Debug("exercise fetched", "url", opts.gitURL, "commit", commit, "dir", checkout)
		dir = checkout
	}

	target, err := driver.ResolveTarget(dir, positional[0])
	if err != nil {
		fmt.Fprintf(s.err, "%v\n", err)
		return 1
	}
	source, program, err := driver.LoadSource(target.MainPath)
	if err != nil {
		reportError(s.err, err, source)
		return 1
	}

	input, closeInput, err := openInput(opts.input, target, s, logger)
	if err != nil {
		fmt.Fprintf(s.err, "%v\n", err)
		return 1
	}
	defer closeInput()

	options := interpreter.Options{
		Output:        s.out,
		Input:         input,
		MaxIterations: target.MaxIterations,
		Logger:        logger,
	}
	if opts.maxIterations > 0 {
		options.MaxIterations = opts.maxIterations
	}
	switch {
	case opts.seedSet:
		options.Random = rand.New(rand.NewSource(opts.seed))
	case target.RandomSeed != nil:
		options.Random = rand.New(rand.NewSource(*target.RandomSeed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger.Debug("running program", "target", target.Name, "path", target.MainPath)
	if err := interpreter.New(options).ExecuteContext(ctx, program); err != nil {
		reportError(s.err, err, source)
		return 1
	}
	return 0
}

// openInput picks, in order: the --input file, the manifest's input file, an
// interactive console, or the raw stdin stream.
func openInput(path string, target *driver.Target, s streams, logger *slog.Logger) (interpreter.LineSource, func() error, error) {
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open input %s: %w", path, err)
		}
		return interpreter.NewReaderSource(file), file.Close, nil
	}
	if target.InputPath != "" {
		return target.OpenInput()
	}
	if isTerminal(s.in) {
		logger.Debug("reading INPUT from the console")
		console := newConsoleSource("? ")
		return console, console.Close, nil
	}
	return interpreter.NewReaderSource(s.in), func() error { return nil }, nil
}

func runCheck(args []string, s streams) int {
	if len(args) != 1 {
		fmt.Fprintln(s.err, "pseudo check requires exactly one source file")
		return 1
	}
	source, program, err := driver.LoadSource(args[0])
	if err != nil {
		reportError(s.err, err, source)
		return 1
	}
	fmt.Fprintf(s.out, "%s: ok (%d statements)\n", args[0], len(program.Statements))
	return 0
}

func runTokens(args []string, s streams) int {
	if len(args) != 1 {
		fmt.Fprintln(s.err, "pseudo tokens requires exactly one source file")
		return 1
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(s.err, "read %s: %v\n", args[0], err)
		return 1
	}
	tokens, err := parser.Tokenize(string(data))
	if err != nil {
		reportError(s.err, err, string(data))
		return 1
	}
	for _, tok := range tokens {
		fmt.Fprintf(s.out, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok)
	}
	return 0
}

func runFetch(args []string, s streams) int {
	fs := flag.NewFlagSet("pseudo fetch", flag.ContinueOnError)
	fs.SetOutput(s.err)
	rev := fs.String("rev", "", "branch, tag or commit to check out (default HEAD)")
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return 1
	}
	if len(positional) != 1 {
		fmt.Fprintln(s.err, "pseudo fetch requires exactly one repository url")
		return 1
	}
	dir, commit, err := fetchInto(positional[0], *rev)
	if err != nil {
		fmt.Fprintf(s.err, "%v\n", err)
		return 1
	}
	fmt.Fprintf(s.out, "%s\t%s\n", commit, dir)
	return 0
}

func fetchInto(url, rev string) (string, string, error) {
	home, err := resolvePseudoHome()
	if err != nil {
		return "", "", err
	}
	return driver.FetchExercise(filepath.Join(home, "exercises"), url, rev)
}

func resolvePseudoHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("PSEUDO_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve PSEUDO_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".pseudo"), nil
}

// reportError renders diagnostics against their source.
func reportError(w io.Writer, err error, source string) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "interrupted")
		return
	}
	fmt.Fprintln(w, strings.TrimRight(diagnostics.Render(err, source), "\n"))
}

// parseInterleaved lets flags follow positional arguments.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func looksLikePathCandidate(arg string) bool {
	return strings.HasSuffix(arg, ".pseudo") || strings.ContainsRune(arg, filepath.Separator)
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pseudo run [--input FILE] [--max-iterations N] [--seed N] [--verbose] <file.pseudo | program>")
	fmt.Fprintln(w, "  pseudo run --git URL [--rev REV] <program>")
	fmt.Fprintln(w, "  pseudo <file.pseudo>")
	fmt.Fprintln(w, "  pseudo check <file.pseudo>")
	fmt.Fprintln(w, "  pseudo tokens <file.pseudo>")
	fmt.Fprintln(w, "  pseudo fetch [--rev REV] <git-url>")
	fmt.Fprintln(w, "  pseudo version")
}
