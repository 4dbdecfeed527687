// Package freeport finds unused ports for nodes that haven't been configured
// with one.
package freeport // import "chainspace.io/radiochain/freeport"

import (
	"net"
)

// UDP returns a free UDP port on the given host. The port is only guaranteed to
// have been free at the time of the call.
func UDP(host string) (int, error) {
	addr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(host, "0"))
	if err != nil {
		return 0, err
	}
	l, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return 0, err
	}
	port := l.LocalAddr().(*net.UDPAddr).Port
	l.Close()
	return port, nil
}
