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

package ump

import (
	"fmt"

	"jinr.ru/greenlab/go-ump/pkg/bits"
)

// Message is the read-only contract shared by every UMP message type
type Message interface {
	Data() []uint32
}

// View is a packet borrowing caller words. No copy is made.
type View struct {
	family Family
	data   []uint32
}

// View validates data and wraps it without copying. Words past the
// family size are not part of the view.
func (f Family) View(data []uint32) (View, error) {
	if err := f.Validate(data); err != nil {
		return View{}, err
	}
	return ViewUnchecked(f, data), nil
}

// ViewUnchecked wraps data without validation. Callers must have
// validated it with Family.Validate.
func ViewUnchecked(f Family, data []uint32) View {
	if len(data) > f.Words {
		data = data[:f.Words]
	}
	return View{family: f, data: data}
}

func (v View) Family() Family { return v.family }
func (v View) Data() []uint32 { return v.data }

func (v View) Group() uint8 {
	mustGroup(v.family)
	return GroupOf(v.data)
}

func (v View) SetGroup(g uint8) {
	mustGroup(v.family)
	WriteGroup(v.data, g)
}

func (v View) Channel() uint8 {
	mustChannel(v.family)
	return ChannelOf(v.data)
}

func (v View) SetChannel(c uint8) {
	mustChannel(v.family)
	WriteChannel(v.data, c)
}

// Packet owns a copy of its words, sized per family
type Packet struct {
	family Family
	words  [MaxPacketWords]uint32
}

// Packet validates data and copies at most the family word count into a
// new packet. Missing words are zero and excess words are ignored.
func (f Family) Packet(data []uint32) (*Packet, error) {
	if err := f.Validate(data); err != nil {
		return nil, err
	}
	p := &Packet{family: f}
	copy(p.words[:f.Words], data)
	return p, nil
}

// NewPacket builds an empty packet of the family with the type code set
func NewPacket(f Family) *Packet {
	p := &Packet{family: f}
	WriteType(p.words[:], f.TypeCode)
	return p
}

func (p *Packet) Family() Family { return p.family }
func (p *Packet) Data() []uint32 { return p.words[:p.family.Words] }
func (p *Packet) View() View     { return ViewUnchecked(p.family, p.Data()) }

func (p *Packet) Group() uint8 {
	mustGroup(p.family)
	return GroupOf(p.words[:])
}

func (p *Packet) SetGroup(g uint8) {
	mustGroup(p.family)
	WriteGroup(p.words[:], g)
}

func (p *Packet) Channel() uint8 {
	mustChannel(p.family)
	return ChannelOf(p.words[:])
}

func (p *Packet) SetChannel(c uint8) {
	mustChannel(p.family)
	WriteChannel(p.words[:], c)
}

func (p *Packet) String() string {
	return fmt.Sprintf("%s%08X", p.family.Name, p.Data())
}

func mustGroup(f Family) {
	if !f.Grouped {
		panic(fmt.Sprintf("ump: family %s has no group field", f.Name))
	}
}

func mustChannel(f Family) {
	if !f.Channeled {
		panic(fmt.Sprintf("ump: family %s has no channel field", f.Name))
	}
}

// Format is the fragmentation marker of stream family packets
type Format uint8

const (
	FormatComplete Format = iota
	FormatStart
	FormatContinue
	FormatEnd
)

var formatNames = [...]string{"Complete", "Start", "Continue", "End"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// StreamFormat decodes the format crumb of a stream family packet
func StreamFormat(data []uint32) Format {
	return Format(bits.Crumb(data[0], 2))
}

// SetStreamFormat writes the format crumb of a stream family packet
func SetStreamFormat(data []uint32, f Format) {
	data[0] = bits.SetCrumb(data[0], 2, uint8(f))
}
