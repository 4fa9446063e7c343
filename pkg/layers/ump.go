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

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/sysex7"
	"jinr.ru/greenlab/go-ump/pkg/ump"
)

const (
	// UMPLayerNum identifies the layer
	UMPLayerNum = 2000
	// WordSize is the size of a UMP word on the wire
	WordSize = 4
)

// UMPPacket is one packet of a UMP stream
type UMPPacket struct {
	Type  uint8
	Words []uint32
}

// Group returns the group field. Only meaningful for grouped families.
func (p UMPPacket) Group() uint8 {
	return ump.GroupOf(p.Words)
}

// UMPLayer is a stream of UMP packets, each word big-endian
type UMPLayer struct {
	layers.BaseLayer
	Packets []UMPPacket
}

var UMPLayerType = gopacket.RegisterLayerType(UMPLayerNum,
	gopacket.LayerTypeMetadata{Name: "UMPLayerType", Decoder: gopacket.DecodeFunc(DecodeUMPLayer)})

// LayerType returns the type of the UMP layer in the layer catalog
func (l *UMPLayer) LayerType() gopacket.LayerType {
	return UMPLayerType
}

func (l *UMPLayer) CanDecode() gopacket.LayerClass {
	return UMPLayerType
}

// BytesToWords reads big-endian 32-bit words
func BytesToWords(data []byte) ([]uint32, error) {
	if len(data)%WordSize != 0 {
		return nil, ErrMisalignedWords{Len: len(data)}
	}
	words := make([]uint32, len(data)/WordSize)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(data[i*WordSize:])
	}
	return words, nil
}

// AppendWords appends words to dst in big-endian order
func AppendWords(dst []byte, words []uint32) []byte {
	for _, w := range words {
		dst = binary.BigEndian.AppendUint32(dst, w)
	}
	return dst
}

// SplitPackets cuts a word stream into packets using the size announced
// by each type code
func SplitPackets(words []uint32) ([]UMPPacket, error) {
	var packets []UMPPacket
	for offset := 0; offset < len(words); {
		t := ump.TypeOf(words[offset:])
		n := ump.WordsForType(t)
		if offset+n > len(words) {
			return packets, ErrTruncatedPacket{Type: t, Need: n, Have: len(words) - offset}
		}
		packets = append(packets, UMPPacket{Type: t, Words: words[offset : offset+n]})
		offset += n
	}
	return packets, nil
}

// DecodeFromBytes attempts to decode the byte slice as a UMP stream
func (l *UMPLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	words, err := BytesToWords(data)
	if err != nil {
		df.SetTruncated()
		return err
	}
	packets, err := SplitPackets(words)
	if err != nil {
		log.Debug("DecodeFromBytes: %s", err)
		df.SetTruncated()
		return err
	}
	l.BaseLayer = layers.BaseLayer{Contents: data, Payload: data}
	l.Packets = packets
	return nil
}

// NextLayerType hands a stream made only of SysEx7 fragments to the
// SysEx7 layer
func (l *UMPLayer) NextLayerType() gopacket.LayerType {
	if len(l.Packets) == 0 {
		return gopacket.LayerTypePayload
	}
	for _, p := range l.Packets {
		if p.Type != sysex7.TypeCode {
			return gopacket.LayerTypePayload
		}
	}
	return SysEx7LayerType
}

// SerializeTo writes the packets to the SerializeBuffer
func (l *UMPLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	for _, p := range l.Packets {
		bytes, err := b.AppendBytes(len(p.Words) * WordSize)
		if err != nil {
			return err
		}
		for i, w := range p.Words {
			binary.BigEndian.PutUint32(bytes[i*WordSize:], w)
		}
	}
	return nil
}

func DecodeUMPLayer(data []byte, p gopacket.PacketBuilder) error {
	l := &UMPLayer{}
	if err := l.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(l)
	return p.NextDecoder(l.NextLayerType())
}
