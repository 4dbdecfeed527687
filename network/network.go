// Package network carries radio packets over UDP so that nodes on different
// hosts can share a simulated radio medium. Packets are either sent to an IPv4
// multicast group or fanned out to every known peer address.
package network // import "chainspace.io/radiochain/network"

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"chainspace.io/radiochain/freeport"
	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
	"chainspace.io/radiochain/radio"

	"golang.org/x/net/ipv4"
)

const maxDatagram = 1500

// Transport modes.
const (
	Multicast = "multicast"
	Unicast   = "unicast"
)

// Error values.
var (
	ErrNodeWithZeroID = errors.New("network: node ID must be non-zero")
)

// Config represents the settings for a Transport.
type Config struct {
	Group      uint8
	Host       string
	ID         int32
	Interface  string
	Loopback   bool
	MaxPayload int
	Mode       string
	Multicast  string
	Port       int
	TTL        int
}

// Transport is a radio.Transmitter backed by a UDP socket.
type Transport struct {
	cfg      *Config
	closed   bool
	conn     net.PacketConn
	contacts *contacts
	dst      *net.UDPAddr
	mu       sync.Mutex
	pconn    *ipv4.PacketConn
	port     int
}

// Close closes the underlying socket.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.pconn != nil && t.dst != nil {
		t.pconn.LeaveGroup(t.iface(), &net.UDPAddr{IP: t.dst.IP})
	}
	return t.conn.Close()
}

// Lookup returns the address of the given peer if known.
func (t *Transport) Lookup(nodeID int32) string {
	return t.contacts.get(nodeID)
}

// Port returns the local port that the transport is listening on.
func (t *Transport) Port() int {
	return t.port
}

// Serve reads frames from the socket and passes the packets for our radio group
// to the handler until the context is cancelled. Frames that we sent ourselves
// are ignored.
func (t *Transport) Serve(ctx context.Context, handler radio.Handler) error {
	go func() {
		<-ctx.Done()
		t.Close()
	}()
	buf := make([]byte, maxDatagram)
	for {
		n, src, err := t.read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("network: unable to read from socket: %s", err)
		}
		frame, err := DecodeFrame(buf[:n])
		if err != nil {
			log.Debug("Dropping short datagram", fld.Address(src.String()), fld.Size(n))
			continue
		}
		if frame.Group != t.cfg.Group || frame.Sender == t.cfg.ID {
			continue
		}
		if err := radio.CheckPayload(frame.Payload, t.cfg.MaxPayload); err != nil {
			log.Debug("Dropping oversized packet", fld.PeerID(frame.Sender), fld.Size(len(frame.Payload)))
			continue
		}
		if t.cfg.Mode == Unicast && t.contacts.get(frame.Sender) == "" {
			t.contacts.set(frame.Sender, src.String())
		}
		payload := make([]byte, len(frame.Payload))
		copy(payload, frame.Payload)
		handler(radio.Packet{Sender: frame.Sender, Payload: payload})
	}
}

// Transmit sends the payload to the multicast group or to every known peer.
func (t *Transport) Transmit(payload []byte) error {
	if err := radio.CheckPayload(payload, t.cfg.MaxPayload); err != nil {
		return err
	}
	buf := Frame{Group: t.cfg.Group, Sender: t.cfg.ID, Payload: payload}.Encode()
	if t.cfg.Mode == Multicast {
		_, err := t.pconn.WriteTo(buf, nil, t.dst)
		return err
	}
	var lastErr error
	for _, addr := range t.contacts.addresses(t.cfg.ID) {
		dst, err := net.ResolveUDPAddr("udp4", addr)
		if err != nil {
			lastErr = err
			continue
		}
		if _, err := t.conn.WriteTo(buf, dst); err != nil {
			if log.AtDebug() {
				log.Debug("Unable to send datagram", fld.Address(addr), fld.Err(err))
			}
			lastErr = err
		}
	}
	return lastErr
}

func (t *Transport) iface() *net.Interface {
	if t.cfg.Interface == "" {
		return nil
	}
	ifi, err := net.InterfaceByName(t.cfg.Interface)
	if err != nil {
		return nil
	}
	return ifi
}

func (t *Transport) read(buf []byte) (int, net.Addr, error) {
	if t.pconn != nil {
		n, _, src, err := t.pconn.ReadFrom(buf)
		return n, src, err
	}
	return t.conn.ReadFrom(buf)
}

func (t *Transport) listenMulticast() error {
	group, err := net.ResolveUDPAddr("udp4", t.cfg.Multicast)
	if err != nil {
		return fmt.Errorf("network: invalid multicast address %q: %s", t.cfg.Multicast, err)
	}
	if !group.IP.IsMulticast() {
		return fmt.Errorf("network: %s is not a multicast address", group.IP)
	}
	conn, err := net.ListenPacket("udp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(group.Port)))
	if err != nil {
		return fmt.Errorf("network: unable to listen on port %d: %s", group.Port, err)
	}
	pconn := ipv4.NewPacketConn(conn)
	t.conn, t.dst, t.pconn, t.port = conn, group, pconn, group.Port
	var ifi *net.Interface
	if t.cfg.Interface != "" {
		if ifi, err = net.InterfaceByName(t.cfg.Interface); err != nil {
			conn.Close()
			return fmt.Errorf("network: unknown interface %q: %s", t.cfg.Interface, err)
		}
		if err = pconn.SetMulticastInterface(ifi); err != nil {
			conn.Close()
			return err
		}
	}
	if err = pconn.JoinGroup(ifi, &net.UDPAddr{IP: group.IP}); err != nil {
		conn.Close()
		return fmt.Errorf("network: unable to join multicast group %s: %s", group.IP, err)
	}
	ttl := t.cfg.TTL
	if ttl <= 0 {
		ttl = 1
	}
	if err = pconn.SetMulticastTTL(ttl); err != nil {
		conn.Close()
		return err
	}
	if err = pconn.SetMulticastLoopback(t.cfg.Loopback); err != nil {
		conn.Close()
		return err
	}
	return nil
}

func (t *Transport) listenUnicast() error {
	port := t.cfg.Port
	if port == 0 {
		var err error
		if port, err = freeport.UDP(t.cfg.Host); err != nil {
			return err
		}
	}
	conn, err := net.ListenPacket("udp4", net.JoinHostPort(t.cfg.Host, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("network: unable to listen on port %d: %s", port, err)
	}
	t.conn, t.port = conn, port
	return nil
}

// New opens the socket for a transport with the given config.
func New(cfg *Config) (*Transport, error) {
	if cfg.ID == 0 {
		return nil, ErrNodeWithZeroID
	}
	t := &Transport{
		cfg:      cfg,
		contacts: newContacts(),
	}
	var err error
	switch cfg.Mode {
	case Multicast:
		err = t.listenMulticast()
	case Unicast:
		err = t.listenUnicast()
	default:
		err = fmt.Errorf("network: unknown transport mode: %q", cfg.Mode)
	}
	if err != nil {
		return nil, err
	}
	log.Info("Listening for radio packets", fld.NodeID(cfg.ID), fld.Group(cfg.Group),
		log.String("mode", cfg.Mode), log.Int("port", t.port))
	return t, nil
}
