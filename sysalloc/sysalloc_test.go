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

package sysalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/bstrx/bstr"
)

func TestAllocString(t *testing.T) {
	h, err := AllocString("hello")
	require.NoError(t, err)
	require.EqualValues(t, 5, StringLen(h))
	require.EqualValues(t, 10, StringByteLen(h))
	require.Equal(t, "hello", bstr.String(h))
	require.Zero(t, uintptr(unsafe.Pointer(h))%bstr.WordSize)
	FreeString(h)
}

func TestAllocStringEmpty(t *testing.T) {
	h, err := AllocString("")
	require.NoError(t, err)
	require.EqualValues(t, 0, StringLen(h))
	FreeString(h)
}

func TestAllocStringLen(t *testing.T) {
	h, err := AllocStringLen("hello", 3)
	require.NoError(t, err)
	require.EqualValues(t, 3, StringLen(h))
	require.Equal(t, "hel", bstr.String(h))
	FreeString(h)
}

func TestAllocStringByteLen(t *testing.T) {
	data := []byte{1, 2, 0, 3}
	h, err := AllocStringByteLen(data)
	require.NoError(t, err)
	require.EqualValues(t, 4, StringByteLen(h))
	require.Equal(t, data, bstr.Bytes(h))
	FreeString(h)
}

func TestAllocInvalidSize(t *testing.T) {
	_, err := alloc(-1)
	require.Error(t, err)
	_, err = alloc(maxAlloc + 1)
	require.Error(t, err)
}

func TestNilHandleLen(t *testing.T) {
	require.EqualValues(t, 0, StringLen(nil))
	require.EqualValues(t, 0, StringByteLen(nil))
}

func TestConcat(t *testing.T) {
	// concatenating two non-heap handles yields a fresh heap handle;
	// both sources keep their value and length
	a := bstr.NewInit(11, "1234567890").BSTR()
	b, err := AllocString("abc")
	require.NoError(t, err)

	c, err := Concat(a, b)
	require.NoError(t, err)
	require.EqualValues(t, StringLen(a)+StringLen(b), StringLen(c))
	require.Equal(t, "1234567890abc", bstr.String(c))

	require.EqualValues(t, 10, StringLen(a))
	require.Equal(t, "1234567890", bstr.String(a))
	require.EqualValues(t, 3, StringLen(b))
	require.Equal(t, "abc", bstr.String(b))

	FreeString(c)
	FreeString(b)
}

func TestConcatNil(t *testing.T) {
	a, err := AllocString("xy")
	require.NoError(t, err)

	c, err := Concat(a, nil)
	require.NoError(t, err)
	require.Equal(t, "xy", bstr.String(c))
	FreeString(c)

	c, err = Concat(nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, StringLen(c))
	FreeString(c)

	FreeString(a)
}

func TestFreeString(t *testing.T) {
	FreeString(nil) // no-op

	h, err := AllocString("x")
	require.NoError(t, err)
	FreeString(h)
	require.Panics(t, func() { FreeString(h) }) // double free

	// a container-backed handle is not a heap allocation
	c := bstr.NewInit(4, "abc")
	require.Panics(t, func() { FreeString(c.BSTR()) })
}

func BenchmarkAllocFree(b *testing.B) {
	for i := 0; i < b.N; i++ {
		h, _ := AllocString("benchmark")
		FreeString(h)
	}
}
