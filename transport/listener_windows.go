//go:build windows
// +build windows

package transport

import (
	"net"

	winio "github.com/Microsoft/go-winio"
)

// Listen listens on a named pipe at path, the Windows counterpart to the
// unix build's domain socket listener.
func Listen(path string) (net.Listener, error) {
	return winio.ListenPipe(path, nil)
}

// Dial connects to a named pipe at path.
func Dial(path string) (net.Conn, error) {
	return winio.DialPipe(path, nil)
}
