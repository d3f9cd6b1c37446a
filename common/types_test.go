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

package common

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressHexChecksum(t *testing.T) {
	// Test vectors from EIP-55.
	tests := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}
	for _, want := range tests {
		assert.Equal(t, want, HexToAddress(want).Hex())
	}
}

func TestIsHexAddress(t *testing.T) {
	assert.True(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.True(t, IsHexAddress("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.True(t, IsHexAddress("0X5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	assert.False(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae"))
	assert.False(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaedd"))
	assert.False(t, IsHexAddress("0xzzzeb6053f3e94c9b9a09f33669435e7ef1beaed"))
}

func TestHashSetBytes(t *testing.T) {
	// Short input is left padded.
	h := BytesToHash([]byte{1, 2})
	assert.Equal(t, byte(1), h[30])
	assert.Equal(t, byte(2), h[31])
	assert.Equal(t, byte(0), h[0])

	// Oversized input is cropped from the left.
	long := make([]byte, 40)
	long[7] = 0xaa // dropped
	long[39] = 0xbb
	h = BytesToHash(long)
	assert.Equal(t, byte(0xbb), h[31])
	assert.Equal(t, byte(0), h[0])
}

func TestAddressSetBytes(t *testing.T) {
	a := BytesToAddress([]byte{1})
	assert.Equal(t, byte(1), a[19])

	long := make([]byte, 25)
	long[4] = 0xaa // dropped
	long[24] = 0xbb
	a = BytesToAddress(long)
	assert.Equal(t, byte(0xbb), a[19])
	assert.Equal(t, byte(0), a[0])
}

func TestHashHex(t *testing.T) {
	h := HexToHash("0x1")
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", h.Hex())
	assert.Equal(t, h.Hex(), h.String())
}

func TestAddressFormat(t *testing.T) {
	a := HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", fmt.Sprintf("%v", a))
	assert.Equal(t, "\"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed\"", fmt.Sprintf("%q", a))
	assert.Equal(t, "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", fmt.Sprintf("%x", a))
	assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", fmt.Sprintf("%#x", a))
	assert.Equal(t, "5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", fmt.Sprintf("%X", a))
}
