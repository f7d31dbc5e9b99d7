package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/d1ced/jsonutil"
)

// validateCommand reports whether each input is a single valid JSON value.
type validateCommand struct {
	io    ioConfig
	files []string
}

func (cmd *validateCommand) run(*kingpin.ParseContext) error {
	var total, failed int
	green, red := color.New(color.FgGreen), color.New(color.FgRed)
	err := cmd.io.eachInput(cmd.files, func(name string, data []byte) error {
		total++
		_, err := jsonutil.DeserializeBytes(data)
		if err == nil {
			fmt.Fprintf(cmd.io.out, "%s: ", name)
			green.Fprintln(cmd.io.out, "ok")
			return nil
		}
		failed++
		fmt.Fprintf(cmd.io.out, "%s: ", name)
		red.Fprint(cmd.io.out, "invalid")
		var pErr *jsonutil.ParseError
		if errors.As(err, &pErr) {
			row, col := pErr.Where()
			fmt.Fprintf(cmd.io.out, " %d:%d: %s\n", row+1, col+1, pErr.Msg)
		} else {
			fmt.Fprintf(cmd.io.out, " %v\n", err)
		}
		level.Debug(logger).Log("msg", "invalid input", "input", name, "err", err)
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("%d of %d inputs invalid", failed, total)
	}
	return nil
}

func addValidateCommand(app *kingpin.Application, streams ioConfig) {
	cmd := &validateCommand{io: streams}
	c := app.Command("validate", "Check that inputs are valid JSON.").Action(cmd.run)
	c.Arg("file", "Files to check, stdin if none.").StringsVar(&cmd.files)
}
