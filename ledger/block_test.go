package ledger_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "chainspace.io/radiochain/ledger"
)

var _ = Describe("Block", func() {

	Describe("Digest", func() {
		It("should match the known DJB2 values", func() {
			Expect(Digest(0, 42, 0, 0)).To(Equal(int32(193001243)))
			Expect(Digest(0, 0, 0, 0)).To(Equal(int32(2088252485)))
			Expect(Digest(123, -5, 99999, 200)).To(Equal(int32(-632753652)))
		})

		It("should be deterministic", func() {
			for i := int32(0); i < 100; i++ {
				Expect(Digest(i, 7, i*3, 11)).To(Equal(Digest(i, 7, i*3, 11)))
			}
		})

		It("should mask to the low byte in Sum8", func() {
			Expect(Sum8(0, 42, 0, 0)).To(Equal(uint8(27)))
			Expect(Sum8(123, -5, 99999, 200)).To(Equal(uint8(12)))
		})
	})

	Describe("construction", func() {
		It("should derive genesis and its successor", func() {
			genesis := Genesis(42)
			Expect(genesis).To(Equal(Block{Index: 0, AuthorID: 42, Data: 0, PreviousHash: 0, Hash: 27}))

			next := genesis.Next(42, 7)
			Expect(next.Index).To(Equal(int32(1)))
			Expect(next.AuthorID).To(Equal(int32(42)))
			Expect(next.Data).To(Equal(int32(7)))
			Expect(next.PreviousHash).To(Equal(genesis.Hash))
			Expect(next.Hash).To(Equal(uint8(92)))
			Expect(next.Verify()).To(BeTrue())
		})
	})

	Describe("wire encoding", func() {
		var b Block

		BeforeEach(func() {
			b = NewBlock(5, -17, 1<<20, 201)
		})

		It("should lay out fields little-endian in 16 bytes", func() {
			buf := NewBlock(1, 2, 3, 4).Encode()
			Expect(buf).To(HaveLen(BlockSize))
			Expect(buf[0]).To(Equal(byte(TagBlock)))
			Expect(buf[2]).To(Equal(byte(4)))
			Expect(buf[4:8]).To(Equal([]byte{1, 0, 0, 0}))
			Expect(buf[8:12]).To(Equal([]byte{2, 0, 0, 0}))
			Expect(buf[12:16]).To(Equal([]byte{3, 0, 0, 0}))
		})

		It("should round trip", func() {
			decoded, err := DecodeBlock(b.Encode())
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(b))
		})

		It("should tolerate trailing padding", func() {
			buf := append(b.Encode(), 0, 0, 0)
			decoded, err := DecodeBlock(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(b))
		})

		It("should reject any bit flip in the hash byte", func() {
			for bit := uint(0); bit < 8; bit++ {
				buf := b.Encode()
				buf[1] ^= 1 << bit
				_, err := DecodeBlock(buf)
				Expect(err).To(Equal(ErrHashMismatch))
			}
		})

		It("should reject a tampered data field", func() {
			buf := b.Encode()
			buf[12]++
			_, err := DecodeBlock(buf)
			Expect(err).To(Equal(ErrHashMismatch))
		})

		It("should reject the wrong tag and short buffers", func() {
			buf := b.Encode()
			buf[0] = byte(TagQueryChain)
			_, err := DecodeBlock(buf)
			Expect(err).To(Equal(ErrMalformedMessage))

			_, err = DecodeBlock(b.Encode()[:BlockSize-1])
			Expect(err).To(Equal(ErrMalformedMessage))
		})
	})

	Describe("QueryChain", func() {
		It("should encode the target at offset 2", func() {
			buf := EncodeQueryChain(-2)
			Expect(buf).To(Equal([]byte{1, 0, 0xfe, 0xff, 0xff, 0xff}))
			target, err := DecodeQueryChain(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(target).To(Equal(int32(-2)))
		})

		It("should reject malformed requests", func() {
			_, err := DecodeQueryChain([]byte{1, 0, 0})
			Expect(err).To(Equal(ErrMalformedMessage))
			_, err = DecodeQueryChain(NewBlock(0, 0, 0, 0).Encode())
			Expect(err).To(Equal(ErrMalformedMessage))
			_, err = MessageTag(nil)
			Expect(err).To(Equal(ErrMalformedMessage))
		})
	})
})
