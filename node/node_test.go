package node

import (
	"fmt"
	"testing"
	"time"

	"chainspace.io/radiochain/config"
	"chainspace.io/radiochain/freeport"
	"chainspace.io/radiochain/ledger"

	. "github.com/onsi/gomega"
)

type counter struct {
	data []int32
}

func (c *counter) AppendLocal(data int32) ledger.Block {
	c.data = append(c.data, data)
	return ledger.Block{Data: data}
}

func TestMinerTick(t *testing.T) {
	always := &counter{}
	m := NewMiner(always, &config.Miner{Probability: 1, Data: 4}, 1)
	for i := 0; i < 10; i++ {
		if !m.Tick() {
			t.Fatalf("a miner with probability 1 should always append")
		}
	}
	if len(always.data) != 10 || always.data[0] != 4 {
		t.Fatalf("unexpected appended data: %v", always.data)
	}

	never := &counter{}
	m = NewMiner(never, &config.Miner{Probability: 0, Data: 4}, 1)
	for i := 0; i < 10; i++ {
		m.Tick()
	}
	if len(never.data) != 0 {
		t.Fatalf("a miner with probability 0 should never append")
	}

	some := &counter{}
	m = NewMiner(some, &config.Miner{Probability: 0.5, Data: 1}, 42)
	for i := 0; i < 1000; i++ {
		m.Tick()
	}
	if n := len(some.data); n < 400 || n > 600 {
		t.Fatalf("expected roughly half of the ticks to append, got %d", n)
	}
}

func TestRunRequiresNodeConfig(t *testing.T) {
	if _, err := Run(&Config{}); err != ErrMissingNodeConfig {
		t.Fatalf("expected ErrMissingNodeConfig, got %v", err)
	}
}

func TestUnicastNodesConverge(t *testing.T) {
	g := NewGomegaWithT(t)

	portA, err := freeport.UDP("127.0.0.1")
	g.Expect(err).NotTo(HaveOccurred())
	portB, err := freeport.UDP("127.0.0.1")
	g.Expect(err).NotTo(HaveOccurred())
	peers := map[int32]string{
		1: fmt.Sprintf("127.0.0.1:%d", portA),
		2: fmt.Sprintf("127.0.0.1:%d", portB),
	}

	start := func(id int32, port int) *Server {
		s, err := Run(&Config{
			NetworkName: "test",
			Node: &config.Node{
				ID:        id,
				Transport: &config.Transport{Type: config.UnicastTransport, Host: "127.0.0.1", Port: port},
				Bootstrap: &config.Bootstrap{Static: peers},
			},
		})
		g.Expect(err).NotTo(HaveOccurred())
		return s
	}
	a := start(1, portA)
	defer a.Shutdown()
	b := start(2, portB)
	defer b.Shutdown()

	g.Expect(a.ID()).To(Equal(int32(1)))
	for i := int32(1); i <= 3; i++ {
		a.Engine().AppendLocal(i)
	}
	g.Eventually(b.Engine().AllValues, 5*time.Second, 20*time.Millisecond).Should(Equal([]int32{1, 2, 3}))
	g.Expect(b.Engine().Blocks()).To(Equal(a.Engine().Blocks()))

	b.Shutdown()
	g.Expect(b.Wait()).To(Succeed())
}
