package ledger_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "chainspace.io/radiochain/ledger"
)

func buildChain(owner int32, n int) *Chain {
	c := NewLocalChain(owner)
	for i := 1; i <= n; i++ {
		c.Append(int32(i))
	}
	return c
}

func mirror(src *Chain, owner int32) *Chain {
	c := NewChain(owner)
	for _, b := range src.Blocks() {
		c.Insert(b)
	}
	return c
}

var _ = Describe("Chain", func() {

	Describe("validity", func() {
		It("should be complete and valid after N appends", func() {
			for n := 1; n <= 20; n++ {
				c := buildChain(3, n)
				Expect(c.Len()).To(Equal(n + 1))
				Expect(c.IsComplete()).To(BeTrue())
				Expect(c.IsValid()).To(BeTrue())
			}
		})

		It("should treat an empty chain as incomplete", func() {
			c := NewChain(9)
			Expect(c.IsComplete()).To(BeFalse())
			Expect(c.IsValid()).To(BeFalse())
			Expect(c.LastIndex()).To(Equal(int32(-1)))
		})

		It("should detect holes", func() {
			src := buildChain(3, 4)
			c := NewChain(3)
			for _, b := range src.Blocks() {
				if b.Index != 2 {
					c.Insert(b)
				}
			}
			Expect(c.LastIndex()).To(Equal(int32(4)))
			Expect(c.IsComplete()).To(BeFalse())
			Expect(c.IsValid()).To(BeFalse())

			b, _ := src.Get(2)
			c.Insert(b)
			Expect(c.IsComplete()).To(BeTrue())
			Expect(c.IsValid()).To(BeTrue())
		})

		It("should reject a block whose hash does not recompute", func() {
			c := mirror(buildChain(3, 3), 3)
			b, _ := c.Get(2)
			b.Hash++
			c.Insert(b)
			Expect(c.IsComplete()).To(BeTrue())
			Expect(c.IsValid()).To(BeFalse())
		})

		It("should tolerate a broken previous hash link", func() {
			c := mirror(buildChain(3, 3), 3)
			b, _ := c.Get(2)
			c.Insert(NewBlock(b.Index, b.AuthorID, b.Data, b.PreviousHash+1))
			Expect(c.IsValid()).To(BeTrue())
		})
	})

	Describe("Insert", func() {
		It("should overwrite existing entries", func() {
			c := NewChain(1)
			c.Insert(NewBlock(0, 1, 5, 0))
			c.Insert(NewBlock(0, 1, 6, 0))
			b, ok := c.Get(0)
			Expect(ok).To(BeTrue())
			Expect(b.Data).To(Equal(int32(6)))
			Expect(c.Len()).To(Equal(1))
		})

		It("should ignore negative indices", func() {
			c := NewChain(1)
			c.Insert(NewBlock(-1, 1, 5, 0))
			Expect(c.Len()).To(Equal(0))
		})
	})

	Describe("Replace", func() {
		var local *Chain

		BeforeEach(func() {
			local = buildChain(1, 3)
		})

		It("should adopt a longer valid chain", func() {
			other := buildChain(2, 5)
			Expect(local.Replace(other)).To(BeTrue())
			Expect(local.Blocks()).To(Equal(other.Blocks()))
			Expect(local.Owner()).To(Equal(int32(1)))

			// The adopted blocks are copied rather than shared.
			other.Append(99)
			Expect(local.Len()).To(Equal(6))
		})

		It("should not adopt a shorter or equal chain", func() {
			before := local.Blocks()
			Expect(local.Replace(buildChain(2, 2))).To(BeFalse())
			Expect(local.Replace(buildChain(2, 3))).To(BeFalse())
			Expect(local.Blocks()).To(Equal(before))
		})

		It("should not adopt a longer invalid chain", func() {
			before := local.Blocks()
			other := mirror(buildChain(2, 6), 2)
			b, _ := other.Get(4)
			b.Hash ^= 0xff
			other.Insert(b)
			Expect(local.Replace(other)).To(BeFalse())
			Expect(local.Blocks()).To(Equal(before))
		})

		It("should not adopt a longer incomplete chain", func() {
			before := local.Blocks()
			src := buildChain(2, 8)
			other := NewChain(2)
			for _, b := range src.Blocks() {
				if b.Index != 0 {
					other.Insert(b)
				}
			}
			Expect(local.Replace(other)).To(BeFalse())
			Expect(local.Blocks()).To(Equal(before))
		})
	})
})

var _ = Describe("PeerTable", func() {
	It("should create chains lazily and return the same entry", func() {
		peers := NewPeerTable()
		_, ok := peers.Lookup(5)
		Expect(ok).To(BeFalse())

		c := peers.LookupOrCreate(5)
		Expect(c.Owner()).To(Equal(int32(5)))
		Expect(c.Len()).To(Equal(0))
		Expect(peers.LookupOrCreate(5)).To(BeIdenticalTo(c))
		Expect(peers.Len()).To(Equal(1))
	})
})
