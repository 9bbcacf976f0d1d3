package main

import (
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/kanshi-io/atomwire/frame"
	"github.com/kanshi-io/atomwire/transport"
)

func frameCommand(c *cli.Context) error {
	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	if len(body) == 0 || body[len(body)-1] != '\n' {
		body = append(body, '\n')
	}
	return transport.WriteMessage(os.Stdout, body)
}

func unframeCommand(c *cli.Context) error {
	buf, err := transport.ReadMessage(os.Stdin)
	if err != nil {
		return err
	}
	_, body, err := frame.Unframe(buf)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(body.Buf[body.Next:body.End])
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write([]byte{'\n'})
	return err
}
