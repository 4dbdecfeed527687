package config // import "chainspace.io/radiochain/config"

// NOTE(tav): The order of some of the struct fields are purposefully not in
// alphabetical order so as to generate a more pleasing ordering when serialised
// to YAML.
import (
	"errors"
	"fmt"
	"hash/fnv"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/radio"

	"gopkg.in/yaml.v2"
)

// Transport types.
const (
	MulticastTransport = "multicast"
	UnicastTransport   = "unicast"
)

// Defaults.
const (
	DefaultMulticastAddress = "239.0.0.100:9100"
	DefaultMinerData        = 1
	DefaultMinerInterval    = 5 * time.Second
	DefaultMinerProbability = 1.0 / 3
)

// Error values.
var (
	ErrInvalidProbability = errors.New("config: miner.probability must be between 0 and 1")
	ErrMissingPeers       = errors.New("config: unicast transport needs bootstrap.mdns or bootstrap.static peers")
)

// Bootstrap represents the configuration for discovering peer addresses when
// using the unicast transport.
type Bootstrap struct {
	MDNS   bool             `yaml:",omitempty"`
	Static map[int32]string `yaml:",omitempty"`
}

// Logging represents the configuration for a node's logging.
type Logging struct {
	ConsoleLevel log.Level `yaml:"console.level,omitempty"`
	FileLevel    log.Level `yaml:"file.level,omitempty"`
	FilePath     string    `yaml:"file.path,omitempty"`
}

// Miner represents the configuration for periodically appending blocks to the
// local chain.
type Miner struct {
	Enabled  bool
	Interval time.Duration
	// Probability is the chance of minting a block on each tick. Zero is
	// replaced by DefaultMinerProbability, so disable the miner rather than
	// setting it to zero.
	Probability float64
	// Data is the value stored in every minted block. Zero is replaced by
	// DefaultMinerData.
	Data int32
}

// Multicast represents the configuration for the multicast transport.
type Multicast struct {
	Address   string
	Interface string `yaml:",omitempty"`
	TTL       int    `yaml:",omitempty"`
	Loopback  bool   `yaml:",omitempty"`
}

// Network represents the configuration shared by every node of a radiochain
// network.
type Network struct {
	Name  string
	Nodes []int32
}

// Radio represents the configuration of the simulated radio.
type Radio struct {
	Group      uint8
	MaxPayload ByteSize `yaml:"max.payload"`
}

// Transport represents the configuration for carrying radio packets over IP.
type Transport struct {
	Type      string
	Host      string     `yaml:",omitempty"`
	Port      int        `yaml:",omitempty"`
	Multicast *Multicast `yaml:",omitempty"`
}

// Node represents the configuration of an individual node in a radiochain
// network.
type Node struct {
	ID        int32
	Network   string
	Radio     *Radio
	Transport *Transport
	Bootstrap *Bootstrap `yaml:",omitempty"`
	Miner     *Miner     `yaml:",omitempty"`
	Logging   *Logging   `yaml:",omitempty"`
}

// Identity returns the configured node ID, or one derived from the host name if
// none has been set. This stands in for the serial number that every physical
// device is manufactured with.
func (n *Node) Identity() (int32, error) {
	if n.ID != 0 {
		return n.ID, nil
	}
	host, err := os.Hostname()
	if err != nil {
		return 0, fmt.Errorf("config: unable to derive a node ID from the hostname: %s", err)
	}
	h := fnv.New32a()
	h.Write([]byte(host))
	id := int32(h.Sum32())
	if id == 0 {
		id = 1
	}
	return id, nil
}

// SetDefaults fills in any values which haven't been set.
func (n *Node) SetDefaults() {
	if n.Radio == nil {
		n.Radio = &Radio{}
	}
	if n.Radio.Group == 0 {
		n.Radio.Group = radio.DefaultGroup
	}
	if n.Radio.MaxPayload == 0 {
		n.Radio.MaxPayload = radio.DefaultMaxPayload
	}
	if n.Transport == nil {
		n.Transport = &Transport{}
	}
	if n.Transport.Type == "" {
		n.Transport.Type = MulticastTransport
	}
	n.Transport.Type = strings.ToLower(n.Transport.Type)
	if n.Transport.Type == MulticastTransport {
		if n.Transport.Multicast == nil {
			n.Transport.Multicast = &Multicast{}
		}
		if n.Transport.Multicast.Address == "" {
			n.Transport.Multicast.Address = DefaultMulticastAddress
		}
		if n.Transport.Multicast.TTL == 0 {
			n.Transport.Multicast.TTL = 1
		}
	}
	if n.Bootstrap == nil {
		n.Bootstrap = &Bootstrap{}
	}
	if n.Miner == nil {
		n.Miner = &Miner{}
	}
	if n.Miner.Interval == 0 {
		n.Miner.Interval = DefaultMinerInterval
	}
	if n.Miner.Probability == 0 {
		n.Miner.Probability = DefaultMinerProbability
	}
	if n.Miner.Data == 0 {
		n.Miner.Data = DefaultMinerData
	}
	if n.Logging == nil {
		n.Logging = &Logging{}
	}
	if n.Logging.ConsoleLevel == 0 {
		n.Logging.ConsoleLevel = log.InfoLevel
	}
}

// Validate checks the config for inconsistent values.
func (n *Node) Validate() error {
	switch n.Transport.Type {
	case MulticastTransport:
	case UnicastTransport:
		if !n.Bootstrap.MDNS && len(n.Bootstrap.Static) == 0 {
			return ErrMissingPeers
		}
	default:
		return fmt.Errorf("config: unknown transport type: %q", n.Transport.Type)
	}
	if n.Miner.Probability < 0 || n.Miner.Probability > 1 {
		return ErrInvalidProbability
	}
	if _, err := n.Radio.MaxPayload.Int(); err != nil {
		return err
	}
	return nil
}

// LoadNetwork will read the YAML file at the given path and return the
// corresponding Network config.
func LoadNetwork(path string) (*Network, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	network := &Network{}
	err = yaml.Unmarshal(data, network)
	return network, err
}

// LoadNode will read the YAML file at the given path and return the
// corresponding Node config with defaults applied.
func LoadNode(path string) (*Node, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Node{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode %s: %s", path, err)
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}
