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

// Package sysex7 implements 7-bit System Exclusive messages in both MIDI
// encodings: 2-word UMP fragments with their reassembly parser, and the
// legacy F0 .. F7 byte stream with its accumulator.
package sysex7

import (
	"fmt"
	"iter"

	"jinr.ru/greenlab/go-ump/pkg/bits"
	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/ump"
)

const (
	TypeCode = 0x3
	// FragmentWords is the size of a SysEx7 UMP
	FragmentWords = 2
	// MaxFragmentPayload is the number of payload bytes one fragment carries
	MaxFragmentPayload = 6

	StartByte = 0xF0
	EndByte   = 0xF7

	statusNibble = 2
	countNibble  = 3
	// payload byte i lives at octet i+payloadOffset of the fragment
	payloadOffset = 2
)

// Family is the UMP family of SysEx7 fragments
var Family = ump.Family{Name: "Sysex7", TypeCode: TypeCode, Words: FragmentWords, Grouped: true}

func init() {
	ump.Register(Family)
}

// Fragment is a validated SysEx7 packet borrowing two caller words.
// The zero Fragment is not usable; obtain one from FromData or a Builder.
type Fragment struct {
	data []uint32
}

// FromData validates the first two words of data as a SysEx7 fragment
func FromData(data []uint32) (Fragment, error) {
	if len(data) < FragmentWords {
		return Fragment{}, buffer.ErrBufferOverflow{Need: FragmentWords, Have: len(data)}
	}
	if err := Family.Validate(data); err != nil {
		return Fragment{}, err
	}
	if err := validateFields(data); err != nil {
		return Fragment{}, err
	}
	return Fragment{data: data[:FragmentWords]}, nil
}

func validateFields(data []uint32) error {
	if bits.Nibble(data[0], statusNibble) > uint8(StatusEnd) {
		return ErrInvalidStatus
	}
	if int(bits.Nibble(data[0], countNibble)) > MaxFragmentPayload {
		return ErrPayloadOverflow
	}
	return nil
}

func (f Fragment) Data() []uint32 { return f.data }
func (f Fragment) Group() uint8   { return ump.GroupOf(f.data) }
func (f Fragment) Status() Status { return Status(bits.Nibble(f.data[0], statusNibble)) }

// Len returns the payload count
func (f Fragment) Len() int {
	return int(bits.Nibble(f.data[0], countNibble))
}

// Payload yields the payload bytes in order. The sequence can be ranged
// over any number of times.
func (f Fragment) Payload() iter.Seq[uint8] {
	data, n := f.data, f.Len()
	return func(yield func(uint8) bool) {
		for i := 0; i < n; i++ {
			if !yield(payloadByte(data, i)) {
				return
			}
		}
	}
}

// AppendPayload appends the payload bytes to dst
func (f Fragment) AppendPayload(dst []byte) []byte {
	for i := 0; i < f.Len(); i++ {
		dst = append(dst, payloadByte(f.data, i))
	}
	return dst
}

func (f Fragment) String() string {
	return fmt.Sprintf("Sysex7{group=%d status=%s payload=% X}", f.Group(), f.Status(), f.AppendPayload(nil))
}

func payloadByte(data []uint32, i int) uint8 {
	o := i + payloadOffset
	return bits.Septet(bits.Octet(data[o/bits.OctetCount], o%bits.OctetCount))
}

func writePayloadByte(data []uint32, i int, v uint8) {
	o := i + payloadOffset
	w := o / bits.OctetCount
	data[w] = bits.SetOctet(data[w], o%bits.OctetCount, bits.Septet(v))
}
