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
	"runtime"
	"sync"
)

// statics maps a call site to the container bound to it, emulating
// function-local static storage: each textual Make call owns one
// container for the process lifetime.
var statics sync.Map // uintptr (caller pc) -> *Container

// callSite identifies the caller of a Make flavor.
func callSite() uintptr {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		panic("bstr: unable to identify call site")
	}
	return pc
}

func siteContainer(pc uintptr, build func() *Container) *Container {
	if v, ok := statics.Load(pc); ok {
		return v.(*Container)
	}
	v, _ := statics.LoadOrStore(pc, build())
	return v.(*Container)
}

// Make returns a handle backed by static storage bound to the call
// site. The first execution creates a zeroed container for bufcount
// wide characters, terminator included; every later execution of the
// same site returns the same backing memory, with whatever content and
// length the previous execution left behind. A caller reusing a site
// with new content must rewrite the buffer and the length itself.
//
// Concurrent execution of the same site from multiple goroutines races
// on the shared buffer; the site table itself is safe to use from
// multiple goroutines.
func Make(bufcount int) BSTR {
	return siteContainer(callSite(), func() *Container {
		return New(bufcount)
	}).BSTR()
}

// MakeByte is the binary-content flavor of Make.
func MakeByte(bufsize int) BSTR {
	return siteContainer(callSite(), func() *Container {
		return NewByte(bufsize)
	}).BSTR()
}

// MakeInit is like Make, but the container is value-initialized as by
// NewInit on the first execution of the site only. Later executions
// observe the current state, not a fresh copy of init.
func MakeInit(bufcount int, init string) BSTR {
	return siteContainer(callSite(), func() *Container {
		return NewInit(bufcount, init)
	}).BSTR()
}

// MakeInitByte is the binary-content flavor of MakeInit.
func MakeInitByte(bufsize int, init []byte) BSTR {
	return siteContainer(callSite(), func() *Container {
		return NewInitByte(bufsize, init)
	}).BSTR()
}
