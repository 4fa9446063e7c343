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

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
	"jinr.ru/greenlab/go-ump/pkg/sysex7"
	"jinr.ru/greenlab/go-ump/pkg/ump"
)

const (
	// SysEx7LayerNum identifies the layer
	SysEx7LayerNum = 2001
	groupCount     = 16
	maxGroup       = groupCount - 1
)

// SysEx7Message is a reassembled SysEx with its group
type SysEx7Message struct {
	Group   uint8  `json:"group"`
	Payload []byte `json:"payload"`
}

// SysEx7Layer is a stream of SysEx7 fragments. Fragments of different
// groups may interleave, each group is reassembled on its own.
type SysEx7Layer struct {
	layers.BaseLayer
	Messages []SysEx7Message

	// MaxWords bounds the words accumulated for one message, 0 means unbounded
	MaxWords int
	Metrics  *metrics.SysexMetrics
}

var SysEx7LayerType = gopacket.RegisterLayerType(SysEx7LayerNum,
	gopacket.LayerTypeMetadata{Name: "SysEx7LayerType", Decoder: gopacket.DecodeFunc(DecodeSysEx7Layer)})

// LayerType returns the type of the SysEx7 layer in the layer catalog
func (l *SysEx7Layer) LayerType() gopacket.LayerType {
	return SysEx7LayerType
}

func (l *SysEx7Layer) CanDecode() gopacket.LayerClass {
	return SysEx7LayerType
}

func (l *SysEx7Layer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

func (l *SysEx7Layer) newParser() *sysex7.Parser {
	if l.MaxWords > 0 {
		return sysex7.NewParserWithBuffer(buffer.NewVec[uint32](l.MaxWords)).WithMetrics(l.Metrics)
	}
	return sysex7.NewParser().WithMetrics(l.Metrics)
}

// DecodeWords reassembles the messages carried by a fragment stream
func (l *SysEx7Layer) DecodeWords(words []uint32) error {
	var parsers [groupCount]*sysex7.Parser
	l.Messages = l.Messages[:0]
	for offset := 0; offset < len(words); offset += sysex7.FragmentWords {
		if t := ump.TypeOf(words[offset:]); t != sysex7.TypeCode {
			return ErrNotSysEx7{Type: t}
		}
		if offset+sysex7.FragmentWords > len(words) {
			return ErrTruncatedPacket{Type: sysex7.TypeCode, Need: sysex7.FragmentWords, Have: len(words) - offset}
		}
		f, err := sysex7.FromData(words[offset:])
		if err != nil {
			return fmt.Errorf("fragment at word %d: %w", offset, err)
		}
		g := f.Group()
		if parsers[g] == nil {
			parsers[g] = l.newParser()
		}
		m, done, err := parsers[g].Parse(f)
		if err != nil {
			return fmt.Errorf("fragment at word %d, group %d: %w", offset, g, err)
		}
		if done {
			l.Messages = append(l.Messages, SysEx7Message{Group: g, Payload: m.Bytes()})
		}
	}
	for g, p := range parsers {
		if p != nil && p.State() == sysex7.ExpectingEnd {
			return ErrIncompleteSysEx{Group: uint8(g)}
		}
	}
	log.Debug("SysEx7Layer: %d messages in %d words", len(l.Messages), len(words))
	return nil
}

// DecodeFromBytes attempts to decode the byte slice as SysEx7 fragments
func (l *SysEx7Layer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	words, err := BytesToWords(data)
	if err != nil {
		df.SetTruncated()
		return err
	}
	if err := l.DecodeWords(words); err != nil {
		switch err.(type) {
		case ErrTruncatedPacket, ErrIncompleteSysEx:
			df.SetTruncated()
		}
		return err
	}
	l.BaseLayer = layers.BaseLayer{Contents: data}
	return nil
}

// EncodeSysEx7 splits payload into as many fragments as it takes:
// a lone Complete, or Start, Continue..., End
func EncodeSysEx7(group uint8, payload []byte) ([]uint32, error) {
	if group > maxGroup {
		return nil, ErrGroupRange{Group: group}
	}
	for i, v := range payload {
		if v&0x80 != 0 {
			return nil, ErrPayloadByte{Offset: i, Value: v}
		}
	}
	count := max(1, (len(payload)+sysex7.MaxFragmentPayload-1)/sysex7.MaxFragmentPayload)
	words := make([]uint32, count*sysex7.FragmentWords)
	for i := 0; i < count; i++ {
		lo := i * sysex7.MaxFragmentPayload
		hi := min(lo+sysex7.MaxFragmentPayload, len(payload))
		_, err := sysex7.NewBuilder(words[i*sysex7.FragmentWords:]).
			Group(group).
			Status(sysex7.FragmentStatus(i, count)).
			Payload(slices.Values(payload[lo:hi])).
			Build()
		if err != nil {
			return nil, err
		}
	}
	return words, nil
}

// SerializeTo writes the fragments of every message to the SerializeBuffer
func (l *SysEx7Layer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	for _, m := range l.Messages {
		words, err := EncodeSysEx7(m.Group, m.Payload)
		if err != nil {
			return err
		}
		bytes, err := b.AppendBytes(len(words) * WordSize)
		if err != nil {
			return err
		}
		for i, w := range words {
			binary.BigEndian.PutUint32(bytes[i*WordSize:], w)
		}
	}
	return nil
}

func DecodeSysEx7Layer(data []byte, p gopacket.PacketBuilder) error {
	l := &SysEx7Layer{}
	if err := l.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(l)
	return nil
}
