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
	"testing"

	"github.com/abiforge/abiforge/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector(t *testing.T) {
	tests := []struct {
		sig  string
		want [4]byte
	}{
		{"transfer(address,uint256)", [4]byte{0xa9, 0x05, 0x9c, 0xbb}},
		{"baz(uint32,bool)", [4]byte{0xcd, 0xcd, 0x77, 0xc0}},
		{"Error(string)", [4]byte{0x08, 0xc3, 0x79, 0xa0}},
		{"Panic(uint256)", [4]byte{0x4e, 0x48, 0x7b, 0x71}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Selector(tt.sig), tt.sig)
	}
}

func TestSelectorLegacySuffix(t *testing.T) {
	// A ":"-delimited return type suffix is cut before hashing.
	assert.Equal(t, Selector("transfer(address,uint256)"), Selector("transfer(address,uint256):(bool)"))
}

func TestEventTopic(t *testing.T) {
	want := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	assert.Equal(t, want, EventTopic("Transfer(address,address,uint256)"))
}

func TestMethodSelectorFromParse(t *testing.T) {
	method, err := ParseFunction("transfer(address to, uint256 amount)")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, method.ID)

	event, err := ParseEvent("event Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"), event.ID)
}
