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
	"fmt"
	"slices"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
	"jinr.ru/greenlab/go-ump/pkg/sysex7"
)

const (
	// SysExBytesLayerNum identifies the layer
	SysExBytesLayerNum = 2002
)

// SysExBytesLayer is a legacy MIDI 1.0 byte stream carrying F0 .. F7
// messages. Bytes between messages are ignored.
type SysExBytesLayer struct {
	layers.BaseLayer
	// Messages holds the payloads, without the framing bytes
	Messages [][]byte

	AllowRealTime bool
	// MaxBytes bounds the size of one message including framing, 0 means unbounded
	MaxBytes int
	Metrics  *metrics.SysexMetrics
}

var SysExBytesLayerType = gopacket.RegisterLayerType(SysExBytesLayerNum,
	gopacket.LayerTypeMetadata{Name: "SysExBytesLayerType", Decoder: gopacket.DecodeFunc(DecodeSysExBytesLayer)})

// LayerType returns the type of the SysEx bytes layer in the layer catalog
func (l *SysExBytesLayer) LayerType() gopacket.LayerType {
	return SysExBytesLayerType
}

func (l *SysExBytesLayer) CanDecode() gopacket.LayerClass {
	return SysExBytesLayerType
}

func (l *SysExBytesLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

func (l *SysExBytesLayer) newAccumulator() *sysex7.Accumulator {
	var acc *sysex7.Accumulator
	if l.MaxBytes > 0 {
		acc = sysex7.NewAccumulatorWithBuffer(buffer.NewVec[uint8](l.MaxBytes))
	} else {
		acc = sysex7.NewAccumulator()
	}
	return acc.AllowRealTime(l.AllowRealTime).WithMetrics(l.Metrics)
}

// DecodeFromBytes attempts to decode the byte slice as a SysEx byte stream
func (l *SysExBytesLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	acc := l.newAccumulator()
	l.Messages = l.Messages[:0]
	for offset := 0; offset < len(data); {
		n, done, err := acc.Feed(data[offset:])
		if err != nil {
			return fmt.Errorf("byte %d: %w", offset+n, err)
		}
		offset += n
		if done {
			m, _ := acc.Message()
			l.Messages = append(l.Messages, slices.Clone(m.PayloadBytes()))
		}
	}
	if pending := len(acc.Buffer()); pending > 0 {
		df.SetTruncated()
		return ErrUnterminatedSysEx{Len: pending}
	}
	log.Debug("SysExBytesLayer: %d messages in %d bytes", len(l.Messages), len(data))
	l.BaseLayer = layers.BaseLayer{Contents: data}
	return nil
}

// SerializeTo writes every message framed by F0 and F7
func (l *SysExBytesLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	for i, payload := range l.Messages {
		for j, v := range payload {
			if v&0x80 != 0 {
				return fmt.Errorf("message %d: %w", i, ErrPayloadByte{Offset: j, Value: v})
			}
		}
		bytes, err := b.AppendBytes(len(payload) + 2)
		if err != nil {
			return err
		}
		if _, err := sysex7.NewBytesBuilder(bytes).Payload(slices.Values(payload)).Build(); err != nil {
			return err
		}
	}
	return nil
}

func DecodeSysExBytesLayer(data []byte, p gopacket.PacketBuilder) error {
	l := &SysExBytesLayer{}
	if err := l.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(l)
	return nil
}
