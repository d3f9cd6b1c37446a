// Copyright 2024 The abiforge Authors
// This file is part of the abiforge library.
//
// The abiforge library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The abiforge library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the abiforge library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"strings"

	"github.com/abiforge/abiforge/common"
	"github.com/abiforge/abiforge/crypto"
)

// Selector returns the 4-byte function (or error) selector of the given
// canonical signature, e.g.
//
//	Selector("transfer(address,uint256)") == [0xa9, 0x05, 0x9c, 0xbb]
//
// A legacy full-signature rendering may carry a `:`-delimited return type
// suffix; the signature is truncated at the first `:` before hashing.
func Selector(sig string) (sel [4]byte) {
	copy(sel[:], crypto.Keccak256([]byte(trimSignature(sig)))[:4])
	return sel
}

// EventTopic returns the full 32-byte keccak256 hash ("topic0") of the given
// canonical event signature. Non-anonymous events store it as the first log
// topic. The same `:`-suffix truncation as for Selector applies.
func EventTopic(sig string) common.Hash {
	return crypto.Keccak256Hash([]byte(trimSignature(sig)))
}

// trimSignature cuts off a legacy `:`-delimited suffix, which is not part of
// the hashed canonical signature.
func trimSignature(sig string) string {
	if i := strings.IndexByte(sig, ':'); i >= 0 {
		return sig[:i]
	}
	return sig
}
