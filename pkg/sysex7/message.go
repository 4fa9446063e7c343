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
)

// Message is a reassembled SysEx: a run of fragments, either one Complete
// or Start, Continue..., End, stored back to back
type Message struct {
	data []uint32
}

// NewMessage validates data as a whole SysEx7 message
func NewMessage(data []uint32) (Message, error) {
	if len(data) == 0 || len(data)%FragmentWords != 0 {
		return Message{}, ErrMalformedMessage
	}
	count := len(data) / FragmentWords
	for i := 0; i < count; i++ {
		f, err := FromData(data[i*FragmentWords:])
		if err != nil {
			return Message{}, err
		}
		if f.Status() != FragmentStatus(i, count) {
			return Message{}, ErrMalformedMessage
		}
	}
	return Message{data: data}, nil
}

// FragmentStatus returns the status of fragment i in a message of count fragments
func FragmentStatus(i, count int) Status {
	switch {
	case count == 1:
		return StatusComplete
	case i == 0:
		return StatusStart
	case i == count-1:
		return StatusEnd
	default:
		return StatusContinue
	}
}

func (m Message) Data() []uint32 { return m.data }

// Group returns the group of the first fragment, 0 for the zero Message
func (m Message) Group() uint8 {
	if len(m.data) < FragmentWords {
		return 0
	}
	return m.fragment(0).Group()
}

func (m Message) fragment(i int) Fragment {
	return Fragment{data: m.data[i*FragmentWords : (i+1)*FragmentWords]}
}

// Fragments yields the fragments in order
func (m Message) Fragments() iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		for i := 0; i < len(m.data)/FragmentWords; i++ {
			if !yield(m.fragment(i)) {
				return
			}
		}
	}
}

// Payload yields the concatenated payload of all fragments
func (m Message) Payload() iter.Seq[uint8] {
	return func(yield func(uint8) bool) {
		for f := range m.Fragments() {
			for v := range f.Payload() {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Len returns the total payload length
func (m Message) Len() int {
	n := 0
	for f := range m.Fragments() {
		n += f.Len()
	}
	return n
}

// Bytes returns a copy of the payload
func (m Message) Bytes() []byte {
	return slices.Collect(m.Payload())
}
