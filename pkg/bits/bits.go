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

// Package bits reads and writes sub-word fields of a 32-bit UMP word.
//
// Fields are addressed MSB first: nibble 0 is bits 31:28, crumb 0 is bits
// 31:30 and octet 0 is bits 31:24. Setters return the updated word and leave
// every bit outside the field untouched. An index outside the word is a
// programming error and panics.
package bits

import "fmt"

const (
	NibbleCount = 8
	CrumbCount  = 16
	OctetCount  = 4
)

func shift(width uint, index, count int, field string) uint {
	if index < 0 || index >= count {
		panic(fmt.Sprintf("bits: %s index %d out of range [0, %d)", field, index, count))
	}
	return 32 - width*uint(index+1)
}

func get(w uint32, width uint, index, count int, field string) uint32 {
	s := shift(width, index, count, field)
	return (w >> s) & (1<<width - 1)
}

func set(w uint32, width uint, index, count int, field string, v uint32) uint32 {
	s := shift(width, index, count, field)
	mask := uint32(1<<width-1) << s
	return w&^mask | (v<<s)&mask
}

// Nibble returns the 4-bit field at index i
func Nibble(w uint32, i int) uint8 {
	return uint8(get(w, 4, i, NibbleCount, "nibble"))
}

// SetNibble writes the low 4 bits of v at index i
func SetNibble(w uint32, i int, v uint8) uint32 {
	return set(w, 4, i, NibbleCount, "nibble", uint32(v))
}

// Crumb returns the 2-bit field at index i
func Crumb(w uint32, i int) uint8 {
	return uint8(get(w, 2, i, CrumbCount, "crumb"))
}

// SetCrumb writes the low 2 bits of v at index i
func SetCrumb(w uint32, i int, v uint8) uint32 {
	return set(w, 2, i, CrumbCount, "crumb", uint32(v))
}

// Octet returns the byte at index i
func Octet(w uint32, i int) uint8 {
	return uint8(get(w, 8, i, OctetCount, "octet"))
}

// SetOctet writes v at index i
func SetOctet(w uint32, i int, v uint8) uint32 {
	return set(w, 8, i, OctetCount, "octet", uint32(v))
}

// Septet truncates v to a 7-bit data value
func Septet(v uint8) uint8 {
	return v & 0x7f
}
