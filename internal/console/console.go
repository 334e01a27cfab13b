package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sergeii/toolbelt/cmd/toolbelt/container"
	"github.com/sergeii/toolbelt/internal/core/entities/probe"
	"github.com/sergeii/toolbelt/internal/metrics"
)

const DefaultPrompt = "toolbelt> "

var errExit = errors.New("exit requested")

type Opts struct {
	Prompt string
	In     io.Reader
	Out    io.Writer
}

type Console struct {
	container container.Container
	metrics   *metrics.Collector
	logger    *zerolog.Logger
	printer   *message.Printer
	prompt    string
	in        io.Reader
	out       io.Writer
}

func New(
	container container.Container,
	metrics *metrics.Collector,
	logger *zerolog.Logger,
	opts Opts,
) *Console {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Console{
		container: container,
		metrics:   metrics,
		logger:    logger,
		printer:   message.NewPrinter(language.English),
		prompt:    prompt,
		in:        opts.In,
		out:       opts.Out,
	}
}

// Run reads commands line by line until the input is exhausted,
// an exit command is entered or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	c.printer.Fprintln(c.out, "Type \"help\" to list the available commands.")
	for {
		c.printer.Fprint(c.out, c.prompt)
		if !scanner.Scan() {
			c.printer.Fprintln(c.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		if err := c.Execute(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

// Execute runs a single command line.
// Probe failures are written out and do not end the session.
func (c *Console) Execute(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	args[0] = slug.Make(args[0])

	var cmds commands
	parser, err := kong.New(
		&cmds,
		kong.Name("toolbelt"),
		kong.Exit(func(int) {}),
		kong.Writers(c.out, c.out),
		kong.NoDefaultHelp(),
	)
	if err != nil {
		return fmt.Errorf("console: build grammar: %w", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		c.metrics.ConsoleCommands.WithLabelValues("unknown").Inc()
		c.logger.Debug().Err(err).Str("line", line).Msg("Unable to parse console command")
		c.printer.Fprintf(c.out, "Error: %s\n", err)
		c.printer.Fprintln(c.out, "Type \"help\" to list the available commands.")
		return nil
	}

	name := kctx.Selected().Name
	c.metrics.ConsoleCommands.WithLabelValues(name).Inc()

	sess := &session{ctx: ctx, console: c}
	if runErr := kctx.Run(sess); runErr != nil {
		if errors.Is(runErr, errExit) {
			return errExit
		}
		c.renderError(runErr)
		c.logger.Debug().Err(runErr).Str("command", name).Msg("Console command failed")
	}
	return nil
}

func (c *Console) renderError(err error) {
	probeErr, ok := probe.AsError(err)
	if !ok {
		c.printer.Fprintf(c.out, "Error: %s\n", err)
		return
	}
	c.printer.Fprintf(c.out, "Error: %s\n", probeErr.Message)
	if probeErr.Reason != "" {
		c.printer.Fprintf(c.out, "Reason: %s\n", probeErr.Reason)
	}
}
