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

import "jinr.ru/greenlab/go-ump/pkg/ump"

var (
	ErrInvalidStatus   = ump.ErrInvalidData{What: "invalid sysex7 status"}
	ErrPayloadOverflow = ump.ErrInvalidData{What: "sysex7 payload count exceeds 6"}

	ErrExpectedStart = ump.ErrInvalidData{What: "expected complete or start packet"}
	ErrExpectedEnd   = ump.ErrInvalidData{What: "expected continue or end packet"}

	ErrUnexpectedStatus = ump.ErrInvalidData{What: "unexpected status byte inside sysex"}
	ErrMissingStart     = ump.ErrInvalidData{What: "expected sysex start byte (0xF0)"}
	ErrMissingEnd       = ump.ErrInvalidData{What: "expected sysex end byte (0xF7)"}
	ErrMalformedMessage = ump.ErrInvalidData{What: "fragments do not form a sysex7 message"}
)
