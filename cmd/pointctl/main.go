// Command pointctl inspects payload documents and sums usage reports.
//
//	pointctl fmt payload.json
//	pointctl json --indent payload.json.zst
//	pointctl usage --workers 4 reports/*.json
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/hupe1980/pointkit"
	"github.com/hupe1980/pointkit/codec"
)

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel    string `help:"Minimum log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogJSON     bool   `help:"Emit logs as JSON" name:"log-json"`
	Codec       string `help:"Codec used to decode documents (${codecs})" default:"go-json" enum:"${codecs}"`
	Compression string `help:"Input compression (none, lz4, zstd); inferred from the file extension when empty" default:""`
}

func (g *Globals) logger() *pointkit.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	if g.LogJSON {
		return pointkit.NewJSONLogger(level)
	}
	return pointkit.NewTextLogger(level)
}

func (g *Globals) options() ([]pointkit.Option, error) {
	opts := []pointkit.Option{
		pointkit.WithCodecName(g.Codec),
		pointkit.WithLogger(g.logger()),
	}
	if g.Compression != "" {
		c, err := codec.ParseCompression(g.Compression)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pointkit.WithCompression(c))
	}
	return opts, nil
}

// FmtCmd prints a payload in display form.
type FmtCmd struct {
	File string `arg:"" help:"Payload document" type:"path"`
}

func (c *FmtCmd) Run(ctx context.Context, g *Globals, w io.Writer) error {
	opts, err := g.options()
	if err != nil {
		return err
	}
	payload, err := pointkit.LoadPayload(ctx, c.File, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, payload)
	return err
}

// JSONCmd prints a payload as JSON with its key order preserved.
type JSONCmd struct {
	File   string `arg:"" help:"Payload document" type:"path"`
	Indent bool   `help:"Indent the output"`
}

func (c *JSONCmd) Run(ctx context.Context, g *Globals, w io.Writer) error {
	opts, err := g.options()
	if err != nil {
		return err
	}
	payload, err := pointkit.LoadPayload(ctx, c.File, opts...)
	if err != nil {
		return err
	}

	var out []byte
	if c.Indent {
		out, err = codec.JSON{}.MarshalIndent(payload, "", "  ")
	} else {
		out, err = payload.MarshalJSON()
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// UsageCmd sums usage reports and prints the total.
type UsageCmd struct {
	Files   []string `arg:"" help:"Usage reports" type:"path"`
	Workers int      `help:"Concurrent loads; 0 uses GOMAXPROCS" default:"0"`
}

func (c *UsageCmd) Run(ctx context.Context, g *Globals, w io.Writer) error {
	opts, err := g.options()
	if err != nil {
		return err
	}
	total, err := pointkit.SumUsageFiles(ctx, c.Files, append(opts, pointkit.WithWorkers(c.Workers))...)
	if err != nil {
		return err
	}
	if total == nil {
		_, err = fmt.Fprintln(w, "{}")
		return err
	}

	out, err := codec.GoJSON{}.MarshalIndent(total, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// CLI is the pointctl command line.
type CLI struct {
	Globals

	Fmt   FmtCmd   `cmd:"" help:"Print a payload in display form"`
	JSON  JSONCmd  `cmd:"" name:"json" help:"Print a payload as JSON"`
	Usage UsageCmd `cmd:"" help:"Sum usage reports"`
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("pointctl"),
		kong.Description("Inspect point payloads and sum usage reports."),
		kong.UsageOnError(),
		kong.Vars{"codecs": strings.Join(codec.Names(), ",")},
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(stdout, (*io.Writer)(nil))
	return kctx.Run(&cli.Globals)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pointctl:", strings.TrimSpace(err.Error()))
		stop()
		os.Exit(1)
	}
}
