package gossip_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "chainspace.io/radiochain/gossip"
	"chainspace.io/radiochain/ledger"
	"chainspace.io/radiochain/radio"
)

type recorder struct {
	sent [][]byte
}

func (r *recorder) Transmit(payload []byte) error {
	r.sent = append(r.sent, payload)
	return nil
}

func (r *recorder) reset() {
	r.sent = nil
}

func (r *recorder) tags() []ledger.Tag {
	tags := make([]ledger.Tag, len(r.sent))
	for i, msg := range r.sent {
		tags[i] = ledger.Tag(msg[0])
	}
	return tags
}

func remoteChain(owner int32, n int) *ledger.Chain {
	c := ledger.NewLocalChain(owner)
	for i := 1; i <= n; i++ {
		c.Append(int32(i * 10))
	}
	return c
}

var _ = Describe("Engine", func() {

	var (
		engine  *Engine
		events  []Event
		tx      *recorder
		localID int32 = 42
	)

	BeforeEach(func() {
		tx = &recorder{}
		engine = New(localID, tx)
		events = nil
		engine.Subscribe(Updated, func(ev Event) { events = append(events, ev) })
		engine.Subscribe(Broadcasted, func(ev Event) { events = append(events, ev) })
	})

	Describe("host API", func() {
		It("should start with only a genesis block", func() {
			Expect(engine.LocalIdentity()).To(Equal(localID))
			Expect(engine.ChainLength()).To(Equal(0))
			Expect(engine.AllValues()).To(BeEmpty())
			Expect(engine.AllAuthorIDs()).To(Equal([]int32{localID}))
			Expect(engine.Blocks()).To(Equal([]ledger.Block{ledger.Genesis(localID)}))
		})

		It("should mint and broadcast appended blocks", func() {
			b := engine.AppendLocal(7)
			Expect(b).To(Equal(ledger.Genesis(localID).Next(localID, 7)))
			Expect(tx.sent).To(Equal([][]byte{b.Encode()}))
			engine.AppendLocal(8)
			Expect(engine.ChainLength()).To(Equal(2))
			Expect(engine.AllValues()).To(Equal([]int32{7, 8}))
			Expect(engine.ValuesByAuthor(localID)).To(Equal([]int32{7, 8}))
			Expect(engine.ValuesByAuthor(1)).To(BeEmpty())
		})

		It("should send one unaddressed chain query on start", func() {
			engine.Start()
			Expect(tx.sent).To(Equal([][]byte{ledger.EncodeQueryChain(0)}))
		})
	})

	Describe("QueryChain", func() {
		BeforeEach(func() {
			engine.AppendLocal(1)
			engine.AppendLocal(2)
			tx.reset()
		})

		It("should broadcast the whole chain in index order when unaddressed", func() {
			engine.Handle(9, ledger.EncodeQueryChain(0))
			Expect(tx.sent).To(HaveLen(3))
			for i, msg := range tx.sent {
				b, err := ledger.DecodeBlock(msg)
				Expect(err).NotTo(HaveOccurred())
				Expect(b.Index).To(Equal(int32(i)))
			}
			Expect(events).To(Equal([]Event{{ChainLength: 2, Kind: Broadcasted}}))
		})

		It("should respond when addressed to us", func() {
			engine.Handle(9, ledger.EncodeQueryChain(localID))
			Expect(tx.sent).To(HaveLen(3))
		})

		It("should ignore queries addressed to someone else", func() {
			engine.Handle(9, ledger.EncodeQueryChain(localID+1))
			Expect(tx.sent).To(BeEmpty())
			Expect(events).To(BeEmpty())
		})
	})

	Describe("Block", func() {
		It("should drop corrupted and malformed messages", func() {
			buf := ledger.NewBlock(1, 9, 1, 0).Encode()
			buf[1]++
			engine.Handle(9, buf)
			engine.Handle(9, []byte{})
			engine.Handle(9, []byte{byte(ledger.TagBlock), 0, 0})
			engine.Handle(9, []byte{77, 1, 2})
			Expect(tx.sent).To(BeEmpty())
			Expect(engine.PeerCount()).To(Equal(0))
		})

		It("should request the history of a peer ahead of us", func() {
			peer := remoteChain(9, 5)
			b, _ := peer.Get(5)
			engine.Handle(9, b.Encode())
			Expect(tx.sent).To(Equal([][]byte{ledger.EncodeQueryChain(9)}))
			Expect(engine.ChainLength()).To(Equal(0))
			Expect(events).To(BeEmpty())
		})

		It("should ignore a peer that is not ahead", func() {
			engine.AppendLocal(1)
			engine.AppendLocal(2)
			tx.reset()
			for _, b := range remoteChain(9, 2).Blocks() {
				engine.Handle(9, b.Encode())
			}
			Expect(tx.sent).To(BeEmpty())
			Expect(engine.AllValues()).To(Equal([]int32{1, 2}))
		})

		It("should adopt a longer complete chain and re-broadcast its tip", func() {
			peer := remoteChain(9, 3)
			for _, b := range peer.Blocks() {
				engine.Handle(9, b.Encode())
			}
			Expect(engine.Blocks()).To(Equal(peer.Blocks()))
			Expect(engine.AllValues()).To(Equal([]int32{10, 20, 30}))
			Expect(engine.AllAuthorIDs()).To(Equal([]int32{9, 9, 9, 9}))

			last, _ := peer.LastBlock()
			Expect(tx.sent).NotTo(BeEmpty())
			Expect(tx.sent[len(tx.sent)-1]).To(Equal(last.Encode()))
			Expect(events).NotTo(BeEmpty())
			Expect(events[len(events)-1]).To(Equal(Event{ChainLength: 3, Kind: Updated}))
		})

		It("should adopt a chain with a broken previous hash link", func() {
			genesis := ledger.Genesis(9)
			first := ledger.NewBlock(1, 9, 10, genesis.Hash+1)
			second := first.Next(9, 20)
			for _, b := range []ledger.Block{second, first, genesis} {
				engine.Handle(9, b.Encode())
			}
			Expect(engine.AllValues()).To(Equal([]int32{10, 20}))
		})
	})
})

var _ = Describe("Reconciliation over a radio hub", func() {

	It("should converge on the longer chain despite reordering and duplicates", func() {
		hub := radio.NewHub(radio.HubConfig{Duplicate: 0.5, Reorder: true, Seed: 1})
		sa, sb := hub.Join(1), hub.Join(2)
		a, b := New(1, sa), New(2, sb)
		sa.Listen(a.HandlePacket)
		sb.Listen(b.HandlePacket)

		a.AppendLocal(100)
		for i := int32(1); i <= 6; i++ {
			b.AppendLocal(i)
		}
		hub.Flush(0)
		Expect(a.Blocks()).To(Equal(b.Blocks()))
		Expect(a.AllValues()).To(Equal([]int32{1, 2, 3, 4, 5, 6}))
		Expect(hub.Pending()).To(Equal(0))
	})

	It("should recover lost blocks through chain queries", func() {
		hub := radio.NewHub(radio.HubConfig{Reorder: true, Seed: 3})
		sa, sb := hub.Join(1), hub.Join(2)
		b := New(2, sb)
		sb.Listen(b.HandlePacket)
		for i := int32(1); i <= 4; i++ {
			b.AppendLocal(i)
		}
		// The first device joins late and has missed everything so far.
		hub.Flush(0)
		a := New(1, sa)
		sa.Listen(a.HandlePacket)
		a.Start()
		hub.Flush(0)
		Expect(a.Blocks()).To(Equal(b.Blocks()))

		var updates int
		a.Subscribe(Updated, func(Event) { updates++ })
		b.AppendLocal(5)
		hub.Flush(0)
		Expect(a.ChainLength()).To(Equal(5))
		Expect(updates).To(Equal(1))
	})
})
