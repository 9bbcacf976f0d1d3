// Command atomcat inspects and exchanges atomwire messages: it decodes
// framed messages read from a socket or stdin and pretty-prints their
// atoms, the way kryptco-kr's kr command and mebo's example clients give a
// small CLI face to their respective libraries.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/op/go-logging"
	"github.com/urfave/cli"
)

var log = logging.MustGetLogger("atomcat")

func setupLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(logging.MustStringFormatter(
		`%{color}atomcat ▶ %{message}%{color:reset}`,
	))
	leveled := logging.AddModuleLevel(backend)
	level := logging.NOTICE
	if lv, err := logging.LogLevel(os.Getenv("ATOMCAT_LOG_LEVEL")); err == nil {
		level = lv
	}
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

func main() {
	setupLogging()

	app := cli.NewApp()
	app.Name = "atomcat"
	app.Usage = "inspect and exchange atomwire messages"
	app.Commands = []cli.Command{
		{
			Name:  "cat",
			Usage: "decode framed messages from stdin or a socket and pretty-print their atoms",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "socket", Usage: "connect to this path instead of reading stdin"},
			},
			Action: catCommand,
		},
		{
			Name:   "frame",
			Usage:  "wrap a raw envelope body (read from stdin) in a length-prefixed frame",
			Action: frameCommand,
		},
		{
			Name:   "unframe",
			Usage:  "strip the length prefix from a framed message on stdin",
			Action: unframeCommand,
		},
		{
			Name:  "ping",
			Usage: "send an empty R request to a socket and wait for its reply",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "socket"},
			},
			Action: pingCommand,
		},
	}
	app.Commands = append(app.Commands, extraCommands...)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("atomcat: %v", err))
		os.Exit(1)
	}
}
