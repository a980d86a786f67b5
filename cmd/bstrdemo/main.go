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

// Command bstrdemo exercises non-heap automation string handles the
// way a component-model consumer would: value-initialized and raw
// static containers, a formatter filling a buffer through the handle,
// heap-side concatenation, and binary content with length updates.
package main

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/cloudwego/bstrx/bstr"
	"github.com/cloudwego/bstrx/sysalloc"
)

const (
	num = "1234567890"

	// format of the string produced by formatGUID
	guidPattern = "{XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}"
)

// formatGUID writes the brace form of id, e.g.
// {6B29FC40-CA47-1067-B31D-00DD010662DA}, into the buffer behind dst
// and returns the number of characters written. The buffer must hold
// at least len(guidPattern)+1 characters.
func formatGUID(dst bstr.BSTR, id uuid.UUID) int {
	s := "{" + strings.ToUpper(id.String()) + "}"
	u := utf16.Encode([]rune(s))
	buf := bstr.WideBuf(dst, len(u)+1)
	copy(buf, u)
	buf[len(u)] = 0
	return len(u)
}

func main() {
	// value-initialized wide static; StringLen reads the handle like
	// any other automation string
	bstrNum := bstr.MakeInit(len(num)+1, num)
	fmt.Printf("%-6s %p: %2d, %q\n", "init", bstrNum, sysalloc.StringLen(bstrNum), bstr.String(bstrNum))

	// raw static filled through the handle, length set afterwards
	bstrUUID := bstr.Make(len(guidPattern) + 1)
	n := formatGUID(bstrUUID, uuid.New())
	bstr.SetLen(bstrUUID, uint32(n))
	fmt.Printf("%-6s %p: %2d, %q\n", "raw", bstrUUID, sysalloc.StringLen(bstrUUID), bstr.String(bstrUUID))

	// heap-side concatenation allocates a fresh handle and leaves both
	// sources untouched
	concat, err := sysalloc.Concat(bstrNum, bstrUUID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%-6s %p: %2d, %q\n", "concat", concat, bstr.Len(concat), bstr.String(concat))
	sysalloc.FreeString(concat)

	// binary content flavor
	bstrByte := bstr.MakeInitByte(len(num)+1, []byte(num))
	fmt.Printf("%-6s %p: %2d, %q\n", "bytes", bstrByte, bstr.ByteLen(bstrByte), bstr.Bytes(bstrByte))

	// truncate in place, then update the length prefix
	bstr.ByteBuf(bstrByte, 6)[5] = 0
	bstr.SetByteLen(bstrByte, 5)
	fmt.Printf("%-6s %p: %2d, %q\n", "update", bstrByte, sysalloc.StringByteLen(bstrByte), bstr.Bytes(bstrByte))
}
