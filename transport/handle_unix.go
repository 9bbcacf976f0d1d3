//go:build linux || darwin
// +build linux darwin

// This file gives the W handle-carrier message kind (frame.HandleCarrier)
// its one OS operation: passing a file descriptor alongside a textual
// payload over SCM_RIGHTS ancillary data, the way the original
// ipc_unix_sendmsg/ipc_unix_recvmsg functions do over a SOCK_SEQPACKET unix
// socket. It is exercised by cmd/atomcat's handle-passing demo, not by the
// codec: the codec only records that a message claims a carried handle.
package transport

import (
	"errors"
	"net"

	"golang.org/x/sys/unix"
)

// maxHandles mirrors SCM_MAX_FDS: the reference implementation's ancillary
// data buffer is sized for this many descriptors, and rejects more.
const maxHandles = 255

var (
	ErrTooManyHandles  = errors.New("transport: more than 255 file descriptors in one message")
	ErrNoHandleCarried = errors.New("transport: no SCM_RIGHTS ancillary data in the message")
)

// SendWithHandles writes body with a single sendmsg call on conn, carrying
// fds as SCM_RIGHTS ancillary data alongside it.
func SendWithHandles(conn *net.UnixConn, body []byte, fds []int) error {
	if len(fds) > maxHandles {
		return ErrTooManyHandles
	}
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	oob := unix.UnixRights(fds...)
	var sendErr error
	err = raw.Control(func(fd uintptr) {
		sendErr = unix.Sendmsg(int(fd), body, oob, nil, 0)
	})
	if err != nil {
		return err
	}
	return sendErr
}

// RecvWithHandles reads with a single recvmsg call on conn into buf,
// returning the byte count and any file descriptors carried in SCM_RIGHTS
// ancillary data.
// Each returned fd is the caller's to close.
func RecvWithHandles(conn *net.UnixConn, buf []byte) (n int, fds []int, err error) {
	oob := make([]byte, unix.CmsgSpace(maxHandles*4))
	raw, err := conn.SyscallConn()
	if err != nil {
		return 0, nil, err
	}
	var oobn int
	var ctrlErr error
	err = raw.Control(func(fd uintptr) {
		n, oobn, _, _, ctrlErr = unix.Recvmsg(int(fd), buf, oob, 0)
	})
	if err != nil {
		return 0, nil, err
	}
	if ctrlErr != nil {
		return 0, nil, ctrlErr
	}
	if oobn == 0 {
		return n, nil, nil
	}

	msgs, err := unix.ParseSocketControlMessage(oob[:oobn])
	if err != nil {
		return n, nil, err
	}
	for _, m := range msgs {
		rights, err := unix.ParseUnixRights(&m)
		if err != nil {
			return n, nil, err
		}
		fds = append(fds, rights...)
	}
	return n, fds, nil
}
