// Command jsonutil formats, validates and summarizes JSON documents.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

var (
	baseLogger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger     = baseLogger
)

func main() {
	app := newApp(os.Stdin, os.Stdout)
	kingpin.MustParse(app.Parse(os.Args[1:]))
}

// newApp builds the command line application. Commands read from in when no
// file is named and write their results to out.
func newApp(in io.Reader, out io.Writer) *kingpin.Application {
	app := kingpin.New("jsonutil", "Format, validate and inspect JSON documents.")
	app.HelpFlag.Short('h')

	logLevel := app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").Enum("debug", "info", "warn", "error")
	app.PreAction(func(*kingpin.ParseContext) error {
		logger = level.NewFilter(baseLogger, levelOption(*logLevel))
		return nil
	})

	streams := ioConfig{in: in, out: out}
	addFmtCommand(app, streams)
	addValidateCommand(app, streams)
	addStatsCommand(app, streams)
	return app
}

// registerFlags exposes the flags register adds to a flag.FlagSet on c, with
// the same names, help texts and defaults.
func registerFlags(c *kingpin.CmdClause, register func(*flag.FlagSet)) {
	fs := flag.NewFlagSet(c.FullCommand(), flag.ContinueOnError)
	register(fs)
	fs.VisitAll(func(f *flag.Flag) {
		c.Flag(f.Name, f.Usage).Default(f.DefValue).SetValue(f.Value)
	})
}

func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// ioConfig carries the streams shared by all commands.
type ioConfig struct {
	in  io.Reader
	out io.Writer
}

// eachInput calls fn with the contents of every named file, or of in when
// names is empty. The name "-" also selects in.
func (c ioConfig) eachInput(names []string, fn func(name string, data []byte) error) error {
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(c.in)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}
		level.Debug(logger).Log("msg", "read input", "input", name, "bytes", len(data))
		if err := fn(name, data); err != nil {
			return err
		}
	}
	return nil
}
