package network

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"

	"github.com/grandcat/zeroconf"
)

func serviceName(network string) string {
	return fmt.Sprintf("_%s._radiochain", strings.ToLower(network))
}

// Announce registers the node's transport port over multicast DNS so that peers
// using the unicast transport can find it. The returned server should be shut
// down when the node exits.
func Announce(network string, nodeID int32, port int) (*zeroconf.Server, error) {
	instance := fmt.Sprintf("_%d", nodeID)
	return zeroconf.Register(instance, serviceName(network), "local.", port, nil, nil)
}

func (t *Transport) browse(ctx context.Context, network string) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return err
	}
	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				instance := entry.ServiceRecord.Instance
				if !strings.HasPrefix(instance, "_") {
					continue
				}
				nodeID, err := strconv.ParseInt(instance[1:], 10, 32)
				if err != nil || int32(nodeID) == t.cfg.ID {
					continue
				}
				if len(entry.AddrIPv4) > 0 && entry.Port > 0 {
					addr := fmt.Sprintf("%s:%d", entry.AddrIPv4[0].String(), entry.Port)
					if t.contacts.get(int32(nodeID)) != addr {
						if log.AtDebug() {
							log.Debug("Found peer address", fld.PeerID(int32(nodeID)), fld.Address(addr))
						}
						t.contacts.set(int32(nodeID), addr)
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return resolver.Browse(ctx, serviceName(network), "local.", entries)
}

// BootstrapMDNS keeps discovering the addresses of peers in the given network
// using multicast DNS until the context is cancelled.
func (t *Transport) BootstrapMDNS(ctx context.Context, network string) error {
	log.Debug("Bootstrapping peers via mDNS", log.String("network.name", network))
	for {
		bctx, cancel := context.WithTimeout(ctx, time.Second)
		if err := t.browse(bctx, network); err != nil {
			log.Error("Unable to browse mDNS", fld.Err(err))
		}
		<-bctx.Done()
		cancel()
		if ctx.Err() != nil {
			return nil
		}
	}
}

// BootstrapStatic adds the given map of peer addresses to the transport's
// contacts.
func (t *Transport) BootstrapStatic(addresses map[int32]string) {
	log.Debug("Bootstrapping peers via a static map", fld.Size(len(addresses)))
	for id, addr := range addresses {
		t.contacts.set(id, addr)
	}
}
