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

// Package ump validates and wraps 32-bit word buffers as Universal MIDI Packets.
//
// Every message family declares a type code (the leading nibble of the first
// word), a fixed packet size and whether it carries group and channel fields.
// Concrete message types are built from these primitives: Family.Validate,
// ViewUnchecked, Data and the accessors of package bits.
package ump

import (
	"fmt"

	"jinr.ru/greenlab/go-ump/pkg/bits"
)

const (
	// MaxPacketWords is the size of the largest UMP
	MaxPacketWords = 4

	groupNibble   = 1
	channelNibble = 3
)

// Family describes one UMP message type
type Family struct {
	Name      string
	TypeCode  uint8
	Words     int
	Grouped   bool
	Channeled bool
}

var (
	ChannelVoice2 = Family{Name: "ChannelVoice2", TypeCode: 0x4, Words: 2, Grouped: true, Channeled: true}
	Data128       = Family{Name: "Data128", TypeCode: 0x5, Words: 4, Grouped: true}
	FlexData      = Family{Name: "FlexData", TypeCode: 0xD, Words: 4, Grouped: true, Channeled: true}
	Stream        = Family{Name: "Stream", TypeCode: 0xF, Words: 4}
)

var families [16]*Family

func init() {
	for _, f := range []Family{ChannelVoice2, Data128, FlexData, Stream} {
		Register(f)
	}
}

// Register makes f known to Lookup. Packages defining a family register it
// from their init function.
func Register(f Family) {
	if f.TypeCode > 0xF {
		panic(fmt.Sprintf("ump: type code 0x%x does not fit a nibble", f.TypeCode))
	}
	if f.Words != 2 && f.Words != MaxPacketWords {
		panic(fmt.Sprintf("ump: family %s must span 2 or 4 words", f.Name))
	}
	registered := f
	families[f.TypeCode] = &registered
}

// Lookup returns the registered family with the given type code
func Lookup(typeCode uint8) (Family, bool) {
	if typeCode > 0xF || families[typeCode] == nil {
		return Family{}, false
	}
	return *families[typeCode], true
}

func (f Family) String() string {
	return fmt.Sprintf("%s(0x%X)", f.Name, f.TypeCode)
}

// Validate checks that data is non-empty and that its first word carries
// the family type code
func (f Family) Validate(data []uint32) error {
	if len(data) == 0 {
		return ErrSliceTooShort
	}
	if TypeOf(data) != f.TypeCode {
		return ErrIncorrectType
	}
	return nil
}

// wordsForType holds the packet size of every UMP type code
var wordsForType = [16]int{
	0x0: 1, 0x1: 1, 0x2: 1, 0x3: 2,
	0x4: 2, 0x5: 4, 0x6: 1, 0x7: 1,
	0x8: 2, 0x9: 2, 0xA: 2, 0xB: 3,
	0xC: 3, 0xD: 4, 0xE: 4, 0xF: 4,
}

// WordsForType returns the packet size in words announced by the type code
// of a first word
func WordsForType(typeCode uint8) int {
	return wordsForType[typeCode&0xF]
}

// TypeOf returns the type code of the packet starting at data[0]
func TypeOf(data []uint32) uint8 {
	return bits.Nibble(data[0], 0)
}

// WriteType writes the type code into data[0]
func WriteType(data []uint32, typeCode uint8) {
	data[0] = bits.SetNibble(data[0], 0, typeCode)
}

// GroupOf returns the group field of the packet starting at data[0]
func GroupOf(data []uint32) uint8 {
	return bits.Nibble(data[0], groupNibble)
}

// WriteGroup writes the group field into data[0]
func WriteGroup(data []uint32, group uint8) {
	data[0] = bits.SetNibble(data[0], groupNibble, group)
}

// ChannelOf returns the channel field of the packet starting at data[0]
func ChannelOf(data []uint32) uint8 {
	return bits.Nibble(data[0], channelNibble)
}

// WriteChannel writes the channel field into data[0]
func WriteChannel(data []uint32, channel uint8) {
	data[0] = bits.SetNibble(data[0], channelNibble, channel)
}
