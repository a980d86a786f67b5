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

// Package sysalloc emulates the heap side of the automation string
// convention: handles carved from pooled memory that can be measured,
// concatenated and freed like their platform counterparts.
//
// Handles backed by a bstr.Container may be passed to the read-only
// routines of this package, but never to FreeString.
package sysalloc

import (
	"fmt"
	"math"
	"sync"
	"unicode/utf16"
	"unsafe"

	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/cloudwego/bstrx/bstr"
)

// maxAlloc bounds the content size so the byte length always fits the
// 32-bit prefix on any target.
const maxAlloc = math.MaxInt32 - (bstr.PrefixSize + bstr.CharSize)

// allocs maps a handle address to the pooled block backing it.
// FreeString needs the original block, not just the handle.
var allocs sync.Map // uintptr -> []byte

// alloc carves a heap-style automation string for size content bytes:
// prefix at the block start, handle just past it, terminator slot
// inside the block. The block is zeroed since pooled memory may be
// dirty. The length prefix is preset to size.
func alloc(size int) (bstr.BSTR, error) {
	if size < 0 || size > maxAlloc {
		return nil, fmt.Errorf("sysalloc: invalid content size %d", size)
	}
	buf := mcache.Malloc(bstr.PrefixSize + size + bstr.CharSize)
	for i := range buf {
		buf[i] = 0
	}
	h := bstr.BSTR((*uint16)(unsafe.Pointer(&buf[bstr.PrefixSize])))
	bstr.SetByteLen(h, uint32(size))
	allocs.Store(uintptr(unsafe.Pointer(h)), buf)
	return h, nil
}

// AllocString allocates a handle holding the UTF-16 encoding of s.
// Analogous to SysAllocString.
func AllocString(s string) (bstr.BSTR, error) {
	u := utf16.Encode([]rune(s))
	h, err := alloc(len(u) * bstr.CharSize)
	if err != nil {
		return nil, err
	}
	copy(bstr.Wide(h), u)
	return h, nil
}

// AllocStringLen allocates a handle of n wide characters and copies up
// to n characters of the UTF-16 encoding of s into it. Analogous to
// SysAllocStringLen.
func AllocStringLen(s string, n int) (bstr.BSTR, error) {
	h, err := alloc(n * bstr.CharSize)
	if err != nil {
		return nil, err
	}
	copy(bstr.Wide(h), utf16.Encode([]rune(s)))
	return h, nil
}

// AllocStringByteLen allocates a handle holding a copy of the given
// binary content. Analogous to SysAllocStringByteLen.
func AllocStringByteLen(b []byte) (bstr.BSTR, error) {
	h, err := alloc(len(b))
	if err != nil {
		return nil, err
	}
	copy(bstr.Bytes(h), b)
	return h, nil
}

// StringLen returns the length of s in wide characters, or 0 for a nil
// handle. Analogous to SysStringLen.
func StringLen(s bstr.BSTR) uint32 {
	if s == nil {
		return 0
	}
	return bstr.Len(s)
}

// StringByteLen returns the length of s in bytes, or 0 for a nil
// handle. Analogous to SysStringByteLen.
func StringByteLen(s bstr.BSTR) uint32 {
	if s == nil {
		return 0
	}
	return bstr.ByteLen(s)
}

// Concat allocates a new handle holding the content of a followed by
// the content of b. Neither source is modified; a nil source counts as
// empty. Analogous to VarBstrCat, which returns the result through a
// freshly allocated handle while leaving its BSTR parameters
// untouched.
func Concat(a, b bstr.BSTR) (bstr.BSTR, error) {
	la, lb := int(StringByteLen(a)), int(StringByteLen(b))
	h, err := alloc(la + lb)
	if err != nil {
		return nil, err
	}
	dst := bstr.Bytes(h)
	if a != nil {
		copy(dst, bstr.Bytes(a))
	}
	if b != nil {
		copy(dst[la:], bstr.Bytes(b))
	}
	return h, nil
}

// FreeString returns the block behind a handle allocated by this
// package to the pool. Freeing nil is a no-op. FreeString panics on a
// handle it did not allocate: handles backed by a bstr.Container are
// not heap allocations and must never be freed.
func FreeString(s bstr.BSTR) {
	if s == nil {
		return
	}
	v, ok := allocs.LoadAndDelete(uintptr(unsafe.Pointer(s)))
	if !ok {
		panic("sysalloc: handle not allocated by this package")
	}
	mcache.Free(v.([]byte))
}
