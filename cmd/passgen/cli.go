package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/vaultpass/passgen-go/internal/clipboard"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/widget"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	copyTimeout = 5 * time.Second
)

// env is the process surface run works against.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	sink   clipboard.Sink
	tty    bool
}

type cliOptions struct {
	length      int
	upper       bool
	lower       bool
	numbers     bool
	symbols     bool
	count       int
	requireEach bool
	source      string
	copy        bool
	configPath  string
	interactive bool
}

func newFlagSet(o *cliOptions, stderr io.Writer) *pflag.FlagSet {
	defaults := crypto.DefaultOptions()

	fs := pflag.NewFlagSet("passgen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.IntVarP(&o.length, "length", "l", defaults.Length, fmt.Sprintf("password length (%d-%d)", crypto.MinLength, crypto.MaxLength))
	fs.BoolVar(&o.upper, "upper", defaults.Uppercase, "include uppercase letters A-Z")
	fs.BoolVar(&o.lower, "lower", defaults.Lowercase, "include lowercase letters a-z")
	fs.BoolVarP(&o.numbers, "numbers", "n", defaults.Numbers, "include digits 0-9")
	fs.BoolVarP(&o.symbols, "symbols", "s", defaults.Symbols, "include symbols "+crypto.SymbolChars)
	fs.IntVarP(&o.count, "count", "c", 1, "number of passwords to print")
	fs.BoolVar(&o.requireEach, "require-each", false, "use at least one character of every selected class")
	fs.StringVar(&o.source, "source", crypto.SourceSecure, "random source: secure or fast")
	fs.BoolVar(&o.copy, "copy", false, "copy the last password to the clipboard")
	fs.StringVar(&o.configPath, "config", "", "preferences file (default "+config.DefaultPreferencesPath()+")")
	fs.BoolVarP(&o.interactive, "interactive", "i", false, "start an interactive session")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: passgen [flags]\n\nFlags:\n%s", fs.FlagUsages())
	}
	return fs
}

func run(args []string, e env) int {
	var o cliOptions
	fs := newFlagSet(&o, e.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(e.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}

	prefs, err := loadPreferences(o.configPath)
	if err != nil {
		fmt.Fprintf(e.stderr, "error: %v\n", err)
		return exitError
	}

	opts, source, err := resolve(fs, o, prefs)
	if err != nil {
		fmt.Fprintf(e.stderr, "error: %v\n", err)
		return exitUsage
	}

	src, err := crypto.ParseSource(source)
	if err != nil {
		fmt.Fprintf(e.stderr, "error: %v\n", err)
		return exitUsage
	}

	session, err := widget.NewSession(e.sink, widget.WriterNotifier{W: e.stderr},
		widget.WithOptions(opts),
		widget.WithGenerator(crypto.NewGenerator(src)),
	)
	if err != nil {
		fmt.Fprintf(e.stderr, "error: %v\n", err)
		return exitUsage
	}

	if o.interactive || (len(args) == 0 && e.tty) {
		return interactive(session, e)
	}
	return batch(session, o, e)
}

// loadPreferences reads an explicit --config file, or the default file when it exists.
func loadPreferences(path string) (config.Preferences, error) {
	if path != "" {
		return config.LoadPreferences(path)
	}
	return config.LoadPreferencesIfExists(config.DefaultPreferencesPath())
}

// resolve layers explicitly set flags over the preferences file.
func resolve(fs *pflag.FlagSet, o cliOptions, prefs config.Preferences) (crypto.Options, string, error) {
	opts := prefs.Options()
	source := prefs.Source

	if fs.Changed("length") {
		opts.Length = o.length
	}
	if fs.Changed("upper") {
		opts.Uppercase = o.upper
	}
	if fs.Changed("lower") {
		opts.Lowercase = o.lower
	}
	if fs.Changed("numbers") {
		opts.Numbers = o.numbers
	}
	if fs.Changed("symbols") {
		opts.Symbols = o.symbols
	}
	if fs.Changed("require-each") {
		opts.RequireEach = o.requireEach
	}
	if fs.Changed("source") {
		source = o.source
	}

	if o.count < 1 {
		return crypto.Options{}, "", errors.New("count must be at least 1")
	}
	return opts, source, nil
}

func batch(s *widget.Session, o cliOptions, e env) int {
	for i := 0; i < o.count; i++ {
		pw, err := s.Generate()
		if err != nil {
			// The empty pool case has already been reported as an alert.
			if !errors.Is(err, crypto.ErrEmptyPool) {
				fmt.Fprintf(e.stderr, "error: %v\n", err)
			}
			return exitError
		}
		fmt.Fprintln(e.stdout, pw)
	}

	if o.copy {
		ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
		defer cancel()
		if err := s.Copy(ctx); err != nil {
			return exitError
		}
	}
	return exitOK
}

const interactiveHelp = `commands:
  g        generate a password
  c        copy the password to the clipboard
  l N      set the length (%d-%d)
  u w n s  toggle uppercase, lowercase, numbers, symbols
  r        toggle at-least-one-of-each
  ?        show the current settings
  h        show this help
  q        quit
`

var classKeys = map[string]widget.Class{
	"u": widget.Uppercase,
	"w": widget.Lowercase,
	"n": widget.Numbers,
	"s": widget.Symbols,
}

func interactive(s *widget.Session, e env) int {
	fmt.Fprintf(e.stderr, interactiveHelp, crypto.MinLength, crypto.MaxLength)
	scanner := bufio.NewScanner(e.stdin)

	for {
		fmt.Fprint(e.stderr, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(e.stderr)
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd := strings.ToLower(fields[0]); cmd {
		case "q", "quit", "exit":
			return exitOK
		case "g":
			if pw, err := s.Generate(); err == nil {
				fmt.Fprintln(e.stdout, pw)
			}
		case "c":
			ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
			err := s.Copy(ctx)
			cancel()
			if err != nil {
				// Already reported through the alert channel.
				continue
			}
		case "l":
			if len(fields) != 2 {
				fmt.Fprintln(e.stderr, "usage: l N")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(e.stderr, "not a number: %q\n", fields[1])
				continue
			}
			if err := s.SetLength(n); err != nil {
				fmt.Fprintln(e.stderr, err)
				continue
			}
			fmt.Fprintf(e.stderr, "length: %d\n", n)
		case "u", "w", "n", "s":
			class := classKeys[cmd]
			fmt.Fprintf(e.stderr, "%s: %s\n", class, onOff(s.Toggle(class)))
		case "r":
			on := !s.Options().RequireEach
			s.SetRequireEach(on)
			fmt.Fprintf(e.stderr, "require each: %s\n", onOff(on))
		case "?":
			printState(s, e.stderr)
		case "h", "help":
			fmt.Fprintf(e.stderr, interactiveHelp, crypto.MinLength, crypto.MaxLength)
		default:
			fmt.Fprintf(e.stderr, "unknown command %q, h for help\n", cmd)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(e.stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

func printState(s *widget.Session, w io.Writer) {
	opts := s.Options()
	fmt.Fprintf(w, "length: %d\n", opts.Length)
	for _, c := range []widget.Class{widget.Uppercase, widget.Lowercase, widget.Numbers, widget.Symbols} {
		fmt.Fprintf(w, "%s: %s\n", c, onOff(s.Enabled(c)))
	}
	fmt.Fprintf(w, "require each: %s\n", onOff(opts.RequireEach))
	fmt.Fprintf(w, "pool size: %d\n", crypto.PoolSize(opts))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
