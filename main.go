package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goforj/godump"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"github.com/jcorbin/godc/internal/fileinput"
)

type exprFlags []string

func (ef *exprFlags) String() string { return strings.Join(*ef, " ") }

func (ef *exprFlags) Set(s string) error {
	*ef = append(*ef, s)
	return nil
}

func main() {
	ctx := context.Background()

	var (
		configPath string
		exprs      exprFlags
		timeout    time.Duration
		trace      bool
		logPath    string
		markup     bool
		dump       bool
		restore    bool
	)
	flag.StringVar(&configPath, "config", "", "read settings from a TOML file (default ~/"+defaultConfigName+")")
	flag.Var(&exprs, "e", "evaluate an expression before any files; may be repeated")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.StringVar(&logPath, "log", "", "write trace logging to a file rather than stderr")
	flag.BoolVar(&markup, "html", false, "write output as HTML paragraphs")
	flag.BoolVar(&dump, "dump", false, "dump machine state once input is exhausted")
	flag.BoolVar(&restore, "restore-operands", false, "restore operands when any binary operator fails")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "html":
			cfg.Markup = markup
		case "restore-operands":
			cfg.RestoreOperands = restore
		}
	})

	var display Display = newConsoleDisplay(os.Stdout)
	if cfg.Markup {
		display = newMarkupDisplay(os.Stdout)
	}
	opts := []Option{cfg.options(), WithDisplay(display)}

	if trace {
		if logPath != "" {
			commonlog.Configure(2, &logPath)
		} else {
			commonlog.Configure(2, nil)
		}
		opts = append(opts, WithLogf(commonlog.GetLogger("dc").Debugf))
	}

	m := New(opts...)

	in := openInput(cfg, exprs, flag.Args())
	if cfg.Markup {
		in = echoReader{in, display}
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = m.Run(ctx, in)
	if cl, ok := in.(io.Closer); ok {
		if cerr := cl.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := m.Close(); err == nil {
		err = cerr
	}

	if trace {
		machineDumper{m: m, out: commonlog.GetWriter()}.dump()
	}
	if dump {
		godump.Dump(m.snapshot())
	}
	if err != nil {
		fatal(err)
	}
}

// openInput reads -e expressions and then the named files, "-" being
// standard input. With neither, a terminal gets a prompt and anything else
// is read as a file.
func openInput(cfg Config, exprs []string, args []string) LineReader {
	if len(exprs) == 0 && len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return newPromptReader(cfg.Prompt, cfg.History)
		}
		args = []string{"-"}
	}

	var in fileinput.Input
	for _, expr := range exprs {
		in.Queue = append(in.Queue, fileinput.NamedReader("-e", strings.NewReader(expr)))
	}
	for _, arg := range args {
		if arg == "-" {
			in.Queue = append(in.Queue, fileinput.NamedReader("<stdin>", os.Stdin))
			continue
		}
		f, err := os.Open(arg)
		if err != nil {
			fatal(err)
		}
		in.Queue = append(in.Queue, f)
	}
	return &in
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
	os.Exit(1)
}
