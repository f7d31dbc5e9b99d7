package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/d1ced/jsonutil"
)

// statsCommand prints the shape of each input.
type statsCommand struct {
	io    ioConfig
	files []string
}

func (cmd *statsCommand) run(*kingpin.ParseContext) error {
	bold := color.New(color.Bold)
	return cmd.io.eachInput(cmd.files, func(name string, data []byte) error {
		n, err := jsonutil.DeserializeBytes(data)
		if err != nil {
			return errors.Wrap(err, name)
		}
		compact, err := jsonutil.Serialize(n, false)
		if err != nil {
			return errors.Wrap(err, name)
		}
		bold.Fprintf(cmd.io.out, "%s:\n", name)
		fmt.Fprintf(cmd.io.out,
			"\tsize: %v, compact: %v\n\ttype: %s, length: %d\n\tnodes: %s, depth: %d\n",
			humanize.Bytes(uint64(len(data))),
			humanize.Bytes(uint64(len(compact))),
			n.Type(),
			n.Len(),
			humanize.Comma(int64(n.Total())),
			n.Depth(),
		)
		return nil
	})
}

func addStatsCommand(app *kingpin.Application, streams ioConfig) {
	cmd := &statsCommand{io: streams}
	c := app.Command("stats", "Print size and shape of JSON documents.").Action(cmd.run)
	c.Arg("file", "Files to inspect, stdin if none.").StringsVar(&cmd.files)
}
