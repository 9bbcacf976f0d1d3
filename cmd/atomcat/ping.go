package main

import (
	"fmt"

	uuid "github.com/satori/go.uuid"
	"github.com/urfave/cli"

	"github.com/kanshi-io/atomwire/frame"
	"github.com/kanshi-io/atomwire/transport"
)

// pingCommand sends a bare R request with no atoms, the liveness-ping
// convention several reference iterations special-case in their dispatch
// loop, and waits for whatever S/E/W reply comes back. It tags the request
// with a correlation ID purely for the log line; the wire protocol itself
// has no notion of correlating a reply to a request.
func pingCommand(c *cli.Context) error {
	path := c.String("socket")
	if path == "" {
		path = transport.SocketPath()
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	log.Info("ping ", id.String(), " -> ", path)

	conn, err := transport.Dial(path)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := transport.WriteMessage(conn, []byte(string(frame.Request)+"\n")); err != nil {
		return err
	}

	buf, err := transport.ReadMessage(conn)
	if err != nil {
		return err
	}
	_, body, err := frame.Unframe(buf)
	if err != nil {
		return err
	}
	kind, err := frame.Start(&body)
	if err != nil {
		return err
	}
	if err := frame.End(&body); err != nil {
		return err
	}
	fmt.Printf("%s replied to %s\n", string(kind), id.String())
	return nil
}
