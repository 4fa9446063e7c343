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

package layers

import "fmt"

type ErrMisalignedWords struct {
	Len int
}

func (e ErrMisalignedWords) Error() string {
	return fmt.Sprintf("UMP stream of %d bytes is not made of 32-bit words", e.Len)
}

type ErrTruncatedPacket struct {
	Type uint8
	Need int
	Have int
}

func (e ErrTruncatedPacket) Error() string {
	return fmt.Sprintf("UMP packet type 0x%X needs %d words, stream has %d", e.Type, e.Need, e.Have)
}

type ErrIncompleteSysEx struct {
	Group uint8
}

func (e ErrIncompleteSysEx) Error() string {
	return fmt.Sprintf("stream ends inside a sysex message on group %d", e.Group)
}

type ErrNotSysEx7 struct {
	Type uint8
}

func (e ErrNotSysEx7) Error() string {
	return fmt.Sprintf("UMP packet type 0x%X is not a sysex7 fragment", e.Type)
}

type ErrPayloadByte struct {
	Offset int
	Value  byte
}

func (e ErrPayloadByte) Error() string {
	return fmt.Sprintf("payload byte 0x%02X at offset %d does not fit 7 bits", e.Value, e.Offset)
}

type ErrGroupRange struct {
	Group uint8
}

func (e ErrGroupRange) Error() string {
	return fmt.Sprintf("group %d out of range 0-15", e.Group)
}

type ErrUnterminatedSysEx struct {
	Len int
}

func (e ErrUnterminatedSysEx) Error() string {
	return fmt.Sprintf("byte stream ends inside a sysex message after %d bytes", e.Len)
}
