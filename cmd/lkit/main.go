// Command lkit compiles and evaluates prefix-notation expressions, either
// from command line arguments, from a YAML program file, or interactively.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/pkg/profile"
	"github.com/sahilm/fuzzy"

	"github.com/zephyrtronium/lkit"
	"github.com/zephyrtronium/lkit/timeutil"
)

type mainCmd struct {
	Given   []string `short:"g" placeholder:"NAME=VALUE" help:"Define a variable before evaluating. May be repeated."`
	Verbose bool     `short:"v" help:"Enable debug logging."`
	Profile bool     `help:"Write a CPU profile to the working directory."`

	Eval evalCmd `cmd:"" default:"withargs" help:"Evaluate expressions from arguments or a program file."`
	Repl replCmd `cmd:"" help:"Evaluate expressions interactively."`
}

type evalCmd struct {
	File  string   `short:"f" type:"existingfile" help:"YAML program file with vars and exprs sections."`
	Echo  bool     `help:"Print each compiled tree before its result."`
	Time  bool     `help:"Report evaluation time for each expression."`
	Bare  bool     `help:"Print result payloads without their variant tags."`
	Exprs []string `arg:"" optional:"" help:"Expression sources. Reads stdin lines when absent."`
}

type replCmd struct {
	Echo bool `help:"Print each compiled tree before its result."`
}

func main() {
	var cmd mainCmd
	ctx := kong.Parse(&cmd,
		kong.Name("lkit"),
		kong.Description("Compile and evaluate prefix-notation expressions."),
		kong.UsageOnError(),
	)
	level := slog.LevelInfo
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if cmd.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	ctx.FatalIfErrorf(ctx.Run(&cmd))
}

// newParser creates the evaluation parser and applies --given definitions.
func newParser(given []string) (*lkit.Parser, error) {
	p := lkit.NewParser()
	for _, d := range given {
		name, val, ok := strings.Cut(d, "=")
		if !ok {
			return nil, fmt.Errorf("variable definitions must be NAME=VALUE, not %q", d)
		}
		name = strings.TrimSpace(name)
		v, ok := lkit.Literal(strings.TrimSpace(val))
		if !ok {
			return nil, fmt.Errorf("setting %s: %q is not a literal", name, val)
		}
		p.SetVariable(name, v)
		slog.Debug("defined variable", slog.String("name", name), slog.String("value", v.String()))
	}
	return p, nil
}

// evalOne compiles and evaluates src on p, printing the result to stdout.
func evalOne(p *lkit.Parser, src string, echo, timed, bare bool) error {
	p.SetSource(src)
	if err := p.Compile(); err != nil {
		return describe(p, err)
	}
	if echo {
		fmt.Printf("%v : ", p.Root())
	}
	var w timeutil.Stopwatch
	w.Start()
	v, err := p.Eval()
	if err != nil {
		return describe(p, err)
	}
	if timed {
		slog.Info("evaluated", slog.String("src", src), slog.Float64("seconds", w.Seconds()))
	}
	fmt.Println(render(v, bare))
	return nil
}

// render formats a result, optionally without its variant tag.
func render(v lkit.Value, bare bool) string {
	s := v.String()
	if !bare {
		return s
	}
	if _, payload, ok := strings.Cut(s, ") "); ok {
		return payload
	}
	return s
}

// describe decorates an unknown-function error with close registered
// names.
func describe(p *lkit.Parser, err error) error {
	var fe *lkit.FuncNameError
	if !errors.As(err, &fe) || fe.Name == "" {
		return err
	}
	m := fuzzy.Find(fe.Name, p.FunctionNames())
	if len(m) == 0 {
		return err
	}
	return fmt.Errorf("%w (did you mean %q?)", err, m[0].Str)
}

func (c *evalCmd) Run(root *mainCmd) error {
	p, err := newParser(root.Given)
	if err != nil {
		return err
	}
	srcs := c.Exprs
	if c.File != "" {
		fsrcs, err := loadProgram(p, c.File)
		if err != nil {
			return err
		}
		srcs = append(fsrcs, srcs...)
	}
	if len(srcs) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return errors.New("nothing to evaluate; give expressions, --file, or pipe stdin")
		}
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			if err := evalOne(p, line, c.Echo, c.Time, c.Bare); err != nil {
				return err
			}
		}
		return sc.Err()
	}
	for _, src := range srcs {
		if err := evalOne(p, src, c.Echo, c.Time, c.Bare); err != nil {
			return err
		}
	}
	return nil
}

func (c *replCmd) Run(root *mainCmd) error {
	p, err := newParser(root.Given)
	if err != nil {
		return err
	}
	tty := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	sc := bufio.NewScanner(os.Stdin)
	for {
		if tty {
			fmt.Print("lkit> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "vars":
			for _, name := range p.VariableNames() {
				v, _ := p.Variable(name)
				fmt.Println(v)
			}
			continue
		case "funcs":
			fmt.Println(strings.Join(p.FunctionNames(), " "))
			continue
		}
		if err := evalOne(p, line, c.Echo, false, false); err != nil {
			fmt.Println("error:", err)
		}
	}
	return sc.Err()
}
