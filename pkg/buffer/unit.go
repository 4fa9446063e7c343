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

// Package buffer describes the storage that UMP and byte stream messages live in.
//
// A buffer is a contiguous run of units, either bytes (legacy MIDI 1.0 stream) or
// 32-bit words (Universal MIDI Packets). Lengths are always counted in units.
// Concrete storages implement the capability interfaces they can support.
package buffer

import "fmt"

// Unit is a storage atom: a byte or a 32-bit word
type Unit interface {
	uint8 | uint32
}

// UnitID identifies the unit a buffer is made of at run time
type UnitID int

const (
	UnitByte UnitID = iota + 1
	UnitWord
)

func (id UnitID) String() string {
	switch id {
	case UnitByte:
		return "byte"
	case UnitWord:
		return "word"
	default:
		return fmt.Sprintf("UnitID(%d)", int(id))
	}
}

// IDOf returns the UnitID of U
func IDOf[U Unit]() UnitID {
	var zero U
	switch any(zero).(type) {
	case uint8:
		return UnitByte
	case uint32:
		return UnitWord
	}
	// the Unit constraint leaves no other case
	panic("buffer: unknown unit")
}

// Zero returns the zero atom of U
func Zero[U Unit]() U {
	var zero U
	return zero
}

// Size returns the size of one unit in bytes
func Size[U Unit]() int {
	if IDOf[U]() == UnitByte {
		return 1
	}
	return 4
}

// AsBytes specialises data to a byte slice. It shares memory with data.
// ok is false when U is not a byte.
func AsBytes[U Unit](data []U) (b []byte, ok bool) {
	b, ok = any(data).([]byte)
	return
}

// AsWords specialises data to a word slice. It shares memory with data.
// ok is false when U is not a word.
func AsWords[U Unit](data []U) (w []uint32, ok bool) {
	w, ok = any(data).([]uint32)
	return
}
