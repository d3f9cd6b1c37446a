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

// Package abi implements the Ethereum contract ABI type system.
//
// It compiles human-readable Solidity signatures ("function transfer(address
// to, uint256 amount)") and JSON ABI fragments into typed Method, Event and
// Error descriptions with precomputed keccak256 selectors and topic hashes,
// and converts between native Go values and the runtime Token representation
// used to drive argument encoders and decoders.
package abi
