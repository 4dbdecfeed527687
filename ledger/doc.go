// Package ledger implements the blocks and chains that are replicated between
// devices, along with their wire encodings.
//
// Every block carries an 8-bit digest of its fields and of its predecessor's
// digest. The digest is a checksum for detecting corruption in transit and
// offers no protection against forgery.
package ledger // import "chainspace.io/radiochain/ledger"
