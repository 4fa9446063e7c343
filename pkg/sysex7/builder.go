/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package sysex7

import (
	"iter"

	"jinr.ru/greenlab/go-ump/pkg/bits"
	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/ump"
)

// Builder writes one fragment into a caller buffer. Errors are recorded
// and reported by Build; setters called after an error do nothing.
type Builder struct {
	buf []uint32
	err error
}

// NewBuilder zeroes the first two words of buf and writes the SysEx7 type code
func NewBuilder(buf []uint32) *Builder {
	if len(buf) < FragmentWords {
		return &Builder{err: buffer.ErrBufferOverflow{Need: FragmentWords, Have: len(buf)}}
	}
	b := &Builder{buf: buf[:FragmentWords]}
	clear(b.buf)
	ump.WriteType(b.buf, TypeCode)
	return b
}

func (b *Builder) Group(g uint8) *Builder {
	if b.err == nil {
		ump.WriteGroup(b.buf, g)
	}
	return b
}

// Status sets the fragment status. A value past StatusEnd is an error.
func (b *Builder) Status(s Status) *Builder {
	if b.err != nil {
		return b
	}
	if s > StatusEnd {
		b.err = ErrInvalidStatus
		return b
	}
	b.buf[0] = bits.SetNibble(b.buf[0], statusNibble, uint8(s))
	return b
}

// Payload replaces the payload with the values of data, truncated to 7 bits.
// More than MaxFragmentPayload values is an error.
func (b *Builder) Payload(data iter.Seq[uint8]) *Builder {
	if b.err != nil {
		return b
	}
	for i := 0; i < MaxFragmentPayload; i++ {
		writePayloadByte(b.buf, i, 0)
	}
	n := 0
	for v := range data {
		if n == MaxFragmentPayload {
			b.err = ErrPayloadOverflow
			return b
		}
		writePayloadByte(b.buf, n, v)
		n++
	}
	b.buf[0] = bits.SetNibble(b.buf[0], countNibble, uint8(n))
	return b
}

// Build validates the fragment and returns its view over the caller buffer
func (b *Builder) Build() (Fragment, error) {
	if b.err != nil {
		return Fragment{}, b.err
	}
	if err := validateFields(b.buf); err != nil {
		return Fragment{}, err
	}
	return Fragment{data: b.buf}, nil
}
