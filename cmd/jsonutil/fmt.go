package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/d1ced/jsonutil"
)

// fmtCommand reformats each input.
type fmtCommand struct {
	io      ioConfig
	cfg     jsonutil.Config
	compact bool
	files   []string
}

func (cmd *fmtCommand) run(*kingpin.ParseContext) error {
	if err := cmd.cfg.Validate(); err != nil {
		return err
	}
	codec := jsonutil.Codec{Config: cmd.cfg, Pretty: !cmd.compact}
	return cmd.io.eachInput(cmd.files, func(name string, data []byte) error {
		n, err := codec.Deserialize(string(data))
		if err != nil {
			return errors.Wrap(err, name)
		}
		s, err := codec.Serialize(n)
		if err != nil {
			return errors.Wrap(err, name)
		}
		level.Debug(logger).Log("msg", "formatted", "input", name, "nodes", n.Total())
		_, err = fmt.Fprintln(cmd.io.out, s)
		return err
	})
}

func addFmtCommand(app *kingpin.Application, streams ioConfig) {
	cmd := &fmtCommand{io: streams}
	c := app.Command("fmt", "Reformat JSON documents.").Action(cmd.run)
	c.Flag("compact", "Print without whitespace.").BoolVar(&cmd.compact)
	registerFlags(c, cmd.cfg.RegisterFlags)
	c.Arg("file", "Files to format, stdin if none.").StringsVar(&cmd.files)
}
