// Package node wires a gossip engine to a network transport and runs it.
package node // import "chainspace.io/radiochain/node"

import (
	"context"
	"errors"
	"sync"
	"time"

	"chainspace.io/radiochain/config"
	"chainspace.io/radiochain/gossip"
	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
	"chainspace.io/radiochain/network"

	"github.com/grandcat/zeroconf"
	"golang.org/x/sync/errgroup"
)

// Error values.
var (
	ErrMissingNodeConfig = errors.New("node: config is missing a value for Node")
)

// Config represents the configuration of an individual node.
type Config struct {
	NetworkName string
	Node        *config.Node
}

// Server represents a running node.
type Server struct {
	cancel    context.CancelFunc
	engine    *gossip.Engine
	group     *errgroup.Group
	id        int32
	mdns      *zeroconf.Server
	once      sync.Once
	transport *network.Transport
}

// Engine returns the node's gossip engine.
func (s *Server) Engine() *gossip.Engine {
	return s.engine
}

// ID returns the node's identity.
func (s *Server) ID() int32 {
	return s.id
}

// Shutdown stops the node's goroutines and releases its resources.
func (s *Server) Shutdown() {
	s.once.Do(func() {
		log.Info("Shutting down node", fld.NodeID(s.id))
		s.cancel()
		if s.mdns != nil {
			s.mdns.Shutdown()
		}
		s.transport.Close()
	})
}

// Wait blocks until the node has stopped and returns the first error that
// caused it to stop, if any.
func (s *Server) Wait() error {
	return s.group.Wait()
}

func (s *Server) logStatus(ev gossip.Event) {
	log.Info("Chain "+ev.Kind.String(), fld.NodeID(s.id), fld.ChainLength(ev.ChainLength),
		fld.Values(s.engine.AllValues()))
}

// Run initialises a node with the given config and starts it in the
// background.
func Run(cfg *Config) (*Server, error) {

	if cfg.Node == nil {
		return nil, ErrMissingNodeConfig
	}
	ncfg := cfg.Node
	ncfg.SetDefaults()
	if err := ncfg.Validate(); err != nil {
		return nil, err
	}

	id, err := ncfg.Identity()
	if err != nil {
		return nil, err
	}

	maxPayload, err := ncfg.Radio.MaxPayload.Int()
	if err != nil {
		return nil, err
	}

	// Open the transport.
	tcfg := &network.Config{
		Group:      ncfg.Radio.Group,
		Host:       ncfg.Transport.Host,
		ID:         id,
		MaxPayload: maxPayload,
		Mode:       ncfg.Transport.Type,
		Port:       ncfg.Transport.Port,
	}
	if mc := ncfg.Transport.Multicast; mc != nil {
		tcfg.Interface = mc.Interface
		tcfg.Loopback = mc.Loopback
		tcfg.Multicast = mc.Address
		tcfg.TTL = mc.TTL
	}
	transport, err := network.New(tcfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	s := &Server{
		cancel:    cancel,
		engine:    gossip.New(id, transport),
		group:     g,
		id:        id,
		transport: transport,
	}
	s.engine.Subscribe(gossip.Updated, s.logStatus)
	s.engine.Subscribe(gossip.Broadcasted, s.logStatus)

	// Bootstrap peer addresses for the unicast transport.
	if ncfg.Transport.Type == network.Unicast {
		if len(ncfg.Bootstrap.Static) > 0 {
			transport.BootstrapStatic(ncfg.Bootstrap.Static)
		}
		if ncfg.Bootstrap.MDNS {
			if s.mdns, err = network.Announce(cfg.NetworkName, id, transport.Port()); err != nil {
				cancel()
				transport.Close()
				return nil, err
			}
			g.Go(func() error {
				return transport.BootstrapMDNS(ctx, cfg.NetworkName)
			})
		}
	}

	g.Go(func() error {
		return transport.Serve(ctx, s.engine.HandlePacket)
	})

	if ncfg.Miner.Enabled {
		miner := NewMiner(s.engine, ncfg.Miner, time.Now().UnixNano()^int64(id))
		g.Go(func() error {
			return miner.Run(ctx)
		})
	}

	// Release the transport once any goroutine fails or the node is shut down.
	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.engine.Start()
	log.Infof("Node %d of the %s network is now running", id, cfg.NetworkName)
	return s, nil

}
