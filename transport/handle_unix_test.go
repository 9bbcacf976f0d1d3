//go:build linux || darwin
// +build linux darwin

package transport

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

func unixPair(t *testing.T) (server, client *net.UnixConn) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atomwire-test.sock")

	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		accepted <- conn
	}()

	raw, err := net.Dial("unix", path)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	client, ok := raw.(*net.UnixConn)
	if !ok {
		t.Fatalf("Dial did not return a *net.UnixConn")
	}

	serverConn := <-accepted
	server, ok = serverConn.(*net.UnixConn)
	if !ok {
		t.Fatalf("Accept did not return a *net.UnixConn")
	}
	return server, client
}

func TestSendRecvWithHandles(t *testing.T) {
	server, client := unixPair(t)
	defer server.Close()
	defer client.Close()

	f, err := os.CreateTemp(t.TempDir(), "handle")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	done := make(chan error, 1)
	go func() {
		done <- SendWithHandles(client, []byte("hi"), []int{int(f.Fd())})
	}()

	buf := make([]byte, 16)
	n, fds, err := RecvWithHandles(server, buf)
	if err != nil {
		t.Fatalf("RecvWithHandles: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("SendWithHandles: %v", err)
	}
	if string(buf[:n]) != "hi" {
		t.Fatalf("payload = %q, want %q", buf[:n], "hi")
	}
	if len(fds) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(fds))
	}
	defer func() {
		for _, fd := range fds {
			_ = fd
		}
	}()
	os.NewFile(uintptr(fds[0]), "received").Close()
}

func TestSendWithHandlesRejectsTooMany(t *testing.T) {
	server, client := unixPair(t)
	defer server.Close()
	defer client.Close()

	fds := make([]int, maxHandles+1)
	if err := SendWithHandles(client, []byte("x"), fds); err != ErrTooManyHandles {
		t.Fatalf("got %v, want ErrTooManyHandles", err)
	}
}
