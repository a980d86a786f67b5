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

import "math/bits"

// A heap-allocated automation string always points into a natively
// aligned block: the 32-bit byte length sits in the 4 bytes immediately
// before the character data, and on 64-bit targets a 4-byte margin
// precedes the length so the data lands on a word boundary. The prefix
// is therefore exactly one native word on both targets.
const (
	// WordSize is the native word size of the target:
	// 4 bytes in a 32-bit process, 8 bytes in a 64-bit process.
	WordSize = bits.UintSize / 8

	// PrefixSize is the byte distance from the container start to the
	// first character. The length field occupies its last 4 bytes.
	PrefixSize = WordSize

	// CharSize is the size of a wide character (UTF-16 code unit).
	CharSize = 2

	// lenSize is the size of the length field.
	lenSize = 4
)

// roundUp rounds n up to the next WordSize boundary. The result is
// always strictly greater than n, matching heap-allocator granularity,
// so a word-granular write at the buffer's tail stays inside the
// container.
func roundUp(n int) int {
	return (n + WordSize) &^ (WordSize - 1)
}
