/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package bstr

import (
	"fmt"
	"unicode/utf16"
	"unsafe"
)

// Container is the backing aggregate of a non-heap automation string:
// one word of prefix holding the 32-bit byte length, immediately
// followed by the character buffer, the whole rounded up to native
// alignment. Consumers never see the container address, only the
// buffer address returned by BSTR.
//
// A container is never explicitly destroyed; it lives as long as any
// handle or view into it does.
type Container struct {
	mem []byte // prefix + buffer, carved from an aligned word array
}

// newContainer builds a zeroed container for bufsize content bytes.
// The backing array is allocated as 64-bit words so the container
// start, and with it the buffer start (the prefix is word-sized), is
// natively aligned.
func newContainer(bufsize int) *Container {
	if bufsize <= 0 {
		panic("bstr: buffer size must be positive")
	}
	total := PrefixSize + roundUp(bufsize)
	words := make([]uint64, (total+7)/8)
	return &Container{
		mem: unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), total),
	}
}

// New creates a container with room for bufcount wide characters,
// terminator included. Content and length prefix start at zero; write
// through the handle and call SetLen before passing the handle to a
// consumer.
func New(bufcount int) *Container {
	return newContainer(bufcount * CharSize)
}

// NewByte creates a container with room for bufsize bytes of binary
// content, terminator included. See comment of New.
func NewByte(bufsize int) *Container {
	return newContainer(bufsize)
}

// NewInit creates a container for bufcount wide characters, terminator
// included, and copies the UTF-16 encoding of init into the buffer.
// The length prefix is set to bufcount-1 characters: the declared
// capacity minus the terminator slot, regardless of how much of it
// init fills. Trailing characters stay zero, so a caller passing a
// substring must append the remaining content and is only then allowed
// to hand out the handle, or must correct the length with SetLen.
//
// NewInit panics if the encoded initializer does not fit bufcount-1
// characters.
func NewInit(bufcount int, init string) *Container {
	c := New(bufcount)
	u := utf16.Encode([]rune(init))
	if len(u) > bufcount-1 {
		panic(fmt.Sprintf("bstr: initializer of %d chars exceeds buffer of %d", len(u), bufcount))
	}
	copy(c.Wide(), u)
	SetLen(c.BSTR(), uint32(bufcount-1))
	return c
}

// NewInitByte is the binary-content flavor of NewInit: the length
// prefix is set to bufsize-1 bytes.
func NewInitByte(bufsize int, init []byte) *Container {
	c := NewByte(bufsize)
	if len(init) > bufsize-1 {
		panic(fmt.Sprintf("bstr: initializer of %d bytes exceeds buffer of %d", len(init), bufsize))
	}
	copy(c.Bytes(), init)
	SetByteLen(c.BSTR(), uint32(bufsize-1))
	return c
}

// BSTR returns the handle: the address of the first character.
func (c *Container) BSTR() BSTR {
	return BSTR((*uint16)(unsafe.Pointer(&c.mem[PrefixSize])))
}

// Bytes returns the whole rounded buffer as bytes, independent of the
// current length prefix.
func (c *Container) Bytes() []byte {
	return c.mem[PrefixSize:]
}

// Wide returns the whole rounded buffer as wide characters,
// independent of the current length prefix. It shares memory with
// Bytes.
func (c *Container) Wide() []uint16 {
	buf := c.mem[PrefixSize:]
	return unsafe.Slice((*uint16)(unsafe.Pointer(&buf[0])), len(buf)/CharSize)
}

// Cap returns the buffer capacity in bytes, i.e. the requested size
// rounded up to native alignment.
func (c *Container) Cap() int {
	return len(c.mem) - PrefixSize
}
