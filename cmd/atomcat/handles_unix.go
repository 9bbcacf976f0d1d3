//go:build linux || darwin
// +build linux darwin

package main

import (
	"fmt"
	"net"
	"os"

	"github.com/urfave/cli"

	"github.com/kanshi-io/atomwire/frame"
	"github.com/kanshi-io/atomwire/transport"
)

// extraCommands adds the handle-passing demo on platforms that support
// SCM_RIGHTS ancillary data; see transport/handle_unix.go.
var extraCommands = []cli.Command{
	{
		Name:  "sendfd",
		Usage: "connect to a unix socket and send stdin's fd alongside a W message",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "socket", Usage: "path to the unix socket"},
		},
		Action: sendFDCommand,
	},
}

func sendFDCommand(c *cli.Context) error {
	path := c.String("socket")
	if path == "" {
		path = transport.SocketPath()
	}
	raw, err := net.Dial("unix", path)
	if err != nil {
		return err
	}
	defer raw.Close()
	conn, ok := raw.(*net.UnixConn)
	if !ok {
		return fmt.Errorf("atomcat: %s is not a unix socket connection", path)
	}
	body := []byte(string(frame.HandleCarrier) + " 1:1\n")
	if err := transport.SendWithHandles(conn, body, []int{int(os.Stdin.Fd())}); err != nil {
		return err
	}
	log.Info("sent stdin's descriptor over ", path)
	return nil
}
