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

// Packet is a SysEx7 fragment owning its words
type Packet struct {
	ump.Packet
}

// NewPacket copies data into an owned fragment. A missing second word
// reads as zero and words past the second are ignored.
func NewPacket(data []uint32) (*Packet, error) {
	p, err := Family.Packet(data)
	if err != nil {
		return nil, err
	}
	if err := validateFields(p.Data()); err != nil {
		return nil, err
	}
	return &Packet{Packet: *p}, nil
}

// Fragment returns a view over the packet words
func (p *Packet) Fragment() Fragment {
	return Fragment{data: p.Data()}
}

func (p *Packet) Status() Status { return p.Fragment().Status() }
func (p *Packet) Len() int       { return p.Fragment().Len() }
