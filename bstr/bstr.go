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

// Package bstr builds length-prefixed character buffers that are
// bit-compatible with platform automation string (BSTR) handles while
// living in ordinary Go-managed storage instead of the platform heap.
//
// The layout a consumer sees is
//
//	[4-byte length][character data][terminator]
//
// with the handle pointing at the first character. Such a handle is
// safe to pass by value to routines that only read it. It must never
// be passed to the deallocation or reallocation contract of the
// emulated handle type: the memory behind it was not heap-allocated.
package bstr

import (
	"unicode/utf16"
	"unsafe"
)

// BSTR is the handle of an automation string: the address of the first
// UTF-16 code unit. The handle is NOT the address of the backing
// container, the 32-bit byte length lives immediately before it.
type BSTR *uint16

// lenPtr locates the length field at its negative offset from the
// handle. All prefix access goes through here.
func lenPtr(s BSTR) *uint32 {
	return (*uint32)(unsafe.Add(unsafe.Pointer(s), -lenSize))
}

// Len returns the length of s in wide characters, terminator not
// counted. s must be non-nil and share the automation string layout;
// no checking is performed.
func Len(s BSTR) uint32 {
	return *lenPtr(s) / CharSize
}

// SetLen updates the length prefix of s to n wide characters,
// terminator not counted. Required after writing new content through
// the handle of an uninitialized or reused container. The caller
// guarantees n*CharSize does not exceed the allocated capacity and
// that the content is properly terminated; SetLen never resizes the
// backing memory.
func SetLen(s BSTR, n uint32) {
	*lenPtr(s) = n * CharSize
}

// ByteLen returns the length of s in bytes, terminator not counted.
func ByteLen(s BSTR) uint32 {
	return *lenPtr(s)
}

// SetByteLen updates the length prefix of s to n bytes, terminator not
// counted. See comment of SetLen for the caller obligations.
func SetByteLen(s BSTR, n uint32) {
	*lenPtr(s) = n
}

// Wide returns the content of s as wide characters, bounded by the
// current length prefix. The slice shares memory with the handle.
func Wide(s BSTR) []uint16 {
	return WideBuf(s, int(Len(s)))
}

// Bytes returns the content of s as bytes, bounded by the current
// length prefix. The slice shares memory with the handle.
func Bytes(s BSTR) []byte {
	return ByteBuf(s, int(ByteLen(s)))
}

// WideBuf returns a view of n code units starting at the handle,
// ignoring the length prefix. Used to fill a buffer before the length
// is set. The caller guarantees n does not exceed the allocated
// capacity.
func WideBuf(s BSTR, n int) []uint16 {
	return unsafe.Slice((*uint16)(s), n)
}

// ByteBuf returns a view of n bytes starting at the handle, ignoring
// the length prefix. See comment of WideBuf.
func ByteBuf(s BSTR, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(s)), n)
}

// String decodes the content of s to a Go string.
func String(s BSTR) string {
	return string(utf16.Decode(Wide(s)))
}
