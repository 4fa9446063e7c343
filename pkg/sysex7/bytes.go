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
	"slices"

	"jinr.ru/greenlab/go-ump/pkg/bits"
	"jinr.ru/greenlab/go-ump/pkg/buffer"
)

// BytesMessage is a legacy SysEx: 0xF0, payload, 0xF7
type BytesMessage struct {
	data []byte
}

// FromBytes validates the framing of data and wraps it without copying
func FromBytes(data []byte) (BytesMessage, error) {
	if len(data) < 2 || data[0] != StartByte {
		return BytesMessage{}, ErrMissingStart
	}
	if data[len(data)-1] != EndByte {
		return BytesMessage{}, ErrMissingEnd
	}
	return BytesMessage{data: data}, nil
}

// Data returns the framed bytes
func (m BytesMessage) Data() []byte { return m.data }

// PayloadBytes returns the bytes between the framing markers
func (m BytesMessage) PayloadBytes() []byte {
	if len(m.data) < 2 {
		return nil
	}
	return m.data[1 : len(m.data)-1]
}

func (m BytesMessage) Len() int { return len(m.PayloadBytes()) }

func (m BytesMessage) Payload() iter.Seq[uint8] {
	return slices.Values(m.PayloadBytes())
}

// BytesBuilder writes a framed SysEx into a caller buffer
type BytesBuilder struct {
	buf []byte
	n   int
	err error
}

// NewBytesBuilder starts a message in buf, which must hold at least the
// two framing bytes
func NewBytesBuilder(buf []byte) *BytesBuilder {
	if len(buf) < 2 {
		return &BytesBuilder{err: buffer.ErrBufferOverflow{Need: 2, Have: len(buf)}}
	}
	buf[0] = StartByte
	return &BytesBuilder{buf: buf, n: 1}
}

// Payload appends data, truncated to 7 bits, leaving room for the end byte
func (b *BytesBuilder) Payload(data iter.Seq[uint8]) *BytesBuilder {
	if b.err != nil {
		return b
	}
	for v := range data {
		if b.n+1 >= len(b.buf) {
			b.err = buffer.ErrBufferOverflow{Need: b.n + 2, Have: len(b.buf)}
			return b
		}
		b.buf[b.n] = bits.Septet(v)
		b.n++
	}
	return b
}

func (b *BytesBuilder) Build() (BytesMessage, error) {
	if b.err != nil {
		return BytesMessage{}, b.err
	}
	b.buf[b.n] = EndByte
	return BytesMessage{data: b.buf[:b.n+1]}, nil
}

// OwnedBytesBuilder edits a SysEx payload in memory it owns
type OwnedBytesBuilder struct {
	payload []byte
}

func NewOwnedBytesBuilder() *OwnedBytesBuilder {
	return &OwnedBytesBuilder{}
}

// Payload replaces the whole payload
func (b *OwnedBytesBuilder) Payload(data iter.Seq[uint8]) *OwnedBytesBuilder {
	b.payload = b.payload[:0]
	return b.AppendPayload(data)
}

func (b *OwnedBytesBuilder) AppendPayload(data iter.Seq[uint8]) *OwnedBytesBuilder {
	for v := range data {
		b.payload = append(b.payload, bits.Septet(v))
	}
	return b
}

// ReplacePayloadRange replaces payload[start:end] with data. The range
// must lie within the current payload, otherwise it panics.
func (b *OwnedBytesBuilder) ReplacePayloadRange(data iter.Seq[uint8], start, end int) *OwnedBytesBuilder {
	var values []byte
	for v := range data {
		values = append(values, bits.Septet(v))
	}
	b.payload = slices.Replace(b.payload, start, end, values...)
	return b
}

func (b *OwnedBytesBuilder) Len() int { return len(b.payload) }

// Build returns a framed copy of the payload
func (b *OwnedBytesBuilder) Build() BytesMessage {
	data := make([]byte, 0, len(b.payload)+2)
	data = append(data, StartByte)
	data = append(data, b.payload...)
	data = append(data, EndByte)
	return BytesMessage{data: data}
}
