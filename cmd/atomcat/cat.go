package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/kanshi-io/atomwire/atom"
	"github.com/kanshi-io/atomwire/frame"
	"github.com/kanshi-io/atomwire/transport"
)

func catCommand(c *cli.Context) error {
	var r io.Reader = os.Stdin
	if path := c.String("socket"); path != "" {
		conn, err := transport.Dial(path)
		if err != nil {
			return err
		}
		defer conn.Close()
		r = conn
	}

	for {
		buf, err := transport.ReadMessage(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := printMessage(buf); err != nil {
			log.Error("malformed message: ", err.Error())
		}
	}
}

func printMessage(buf []byte) error {
	_, body, err := frame.Unframe(buf)
	if err != nil {
		return err
	}
	kind, err := frame.Start(&body)
	if err != nil {
		return err
	}
	fmt.Println(color.CyanString(string(kind)))
	for {
		v, err := atom.Any(&body)
		if err != nil {
			return err
		}
		if v.Tag == atom.TagEnd {
			return nil
		}
		fmt.Println(formatValue(v, 1))
	}
}

func formatValue(v atom.Value, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch v.Tag {
	case atom.TagBool:
		return indent + color.YellowString("%v", v.Bool)
	case atom.TagPositiveInt:
		return indent + color.GreenString("%d", v.Uint)
	case atom.TagNegativeInt:
		return indent + color.GreenString("-%d", v.Uint)
	case atom.TagDouble:
		return indent + color.GreenString("%g", v.Double)
	case atom.TagString:
		return indent + color.MagentaString("%q", v.Slice)
	case atom.TagBytes:
		return indent + color.MagentaString("|%s|", hex.EncodeToString(v.Slice))
	case atom.TagReference:
		return indent + color.MagentaString("@%s", hex.EncodeToString(v.Slice))
	case atom.TagArray, atom.TagMap:
		open, close := "[", "]"
		if v.Tag == atom.TagMap {
			open, close = "{", "}"
		}
		lines := []string{indent + open}
		sub := v.Container
		for {
			child, err := atom.Any(&sub)
			if err != nil || child.Tag == atom.TagEnd {
				break
			}
			lines = append(lines, formatValue(child, depth+1))
		}
		lines = append(lines, indent+close)
		return strings.Join(lines, "\n")
	default:
		return indent + "?"
	}
}
