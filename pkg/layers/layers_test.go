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
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/sysex7"
)

func payloadOf(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}

func TestEncodeSysEx7(t *testing.T) {
	words, err := EncodeSysEx7(1, []byte{0x12, 0x34, 0x56})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x3103_1234, 0x5600_0000}, words)

	words, err = EncodeSysEx7(0, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x3000_0000, 0}, words)

	words, err = EncodeSysEx7(2, payloadOf(13))
	require.NoError(t, err)
	assert.Equal(t, []uint32{
		0x3216_0001, 0x0203_0405,
		0x3226_0607, 0x0809_0A0B,
		0x3231_0C00, 0x0000_0000,
	}, words)

	_, err = EncodeSysEx7(0, []byte{0x01, 0x80})
	require.ErrorIs(t, err, ErrPayloadByte{Offset: 1, Value: 0x80})
}

func TestEncodeSysEx7RejectsGroupOutOfRange(t *testing.T) {
	_, err := EncodeSysEx7(16, payloadOf(2))
	require.ErrorIs(t, err, ErrGroupRange{Group: 16})

	buf := gopacket.NewSerializeBuffer()
	in := &SysEx7Layer{Messages: []SysEx7Message{{Group: 17, Payload: payloadOf(3)}}}
	err = gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, in)
	assert.ErrorIs(t, err, ErrGroupRange{Group: 17})
	assert.Empty(t, buf.Bytes())
}

func TestEncodedFragmentsFormAMessage(t *testing.T) {
	for _, n := range []int{0, 1, 6, 7, 12, 100} {
		words, err := EncodeSysEx7(5, payloadOf(n))
		require.NoError(t, err)
		m, err := sysex7.NewMessage(words)
		require.NoError(t, err, "payload of %d bytes", n)
		assert.Equal(t, n, m.Len())
	}
}

func TestSysEx7LayerRoundTrip(t *testing.T) {
	in := &SysEx7Layer{Messages: []SysEx7Message{
		{Group: 0, Payload: payloadOf(20)},
		{Group: 9, Payload: []byte{0x7E, 0x7F}},
	}}
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, in))
	// 4 fragments plus 1 fragment
	require.Len(t, buf.Bytes(), 5*sysex7.FragmentWords*WordSize)

	packet := gopacket.NewPacket(buf.Bytes(), UMPLayerType, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())

	umpLayer, ok := packet.Layer(UMPLayerType).(*UMPLayer)
	require.True(t, ok)
	assert.Len(t, umpLayer.Packets, 5)

	out, ok := packet.Layer(SysEx7LayerType).(*SysEx7Layer)
	require.True(t, ok)
	assert.Equal(t, in.Messages, out.Messages)
}

func TestSysEx7LayerInterleavedGroups(t *testing.T) {
	a, err := EncodeSysEx7(1, payloadOf(8))
	require.NoError(t, err)
	b, err := EncodeSysEx7(2, []byte{0x42})
	require.NoError(t, err)
	words := append(append(append([]uint32{}, a[:2]...), b...), a[2:]...)

	l := &SysEx7Layer{}
	require.NoError(t, l.DecodeWords(words))
	assert.Equal(t, []SysEx7Message{
		{Group: 2, Payload: []byte{0x42}},
		{Group: 1, Payload: payloadOf(8)},
	}, l.Messages)
}

func TestSysEx7LayerErrors(t *testing.T) {
	l := &SysEx7Layer{}

	err := l.DecodeWords([]uint32{0x3010_0000, 0})
	require.ErrorIs(t, err, ErrIncompleteSysEx{Group: 0})

	err = l.DecodeWords([]uint32{0x3020_0000, 0})
	require.ErrorIs(t, err, sysex7.ErrExpectedStart)

	err = l.DecodeWords([]uint32{0x4000_0000, 0})
	require.ErrorIs(t, err, ErrNotSysEx7{Type: 0x4})

	err = l.DecodeWords([]uint32{0x3000_0000})
	require.ErrorIs(t, err, ErrTruncatedPacket{Type: 0x3, Need: 2, Have: 1})

	words, err := EncodeSysEx7(0, payloadOf(20))
	require.NoError(t, err)
	limited := &SysEx7Layer{MaxWords: 4}
	require.ErrorIs(t, limited.DecodeWords(words), buffer.ErrBufferOverflow{})
}

func TestSysEx7LayerTruncatedFeedback(t *testing.T) {
	data := AppendWords(nil, []uint32{0x3010_0000, 0})
	packet := gopacket.NewPacket(data, SysEx7LayerType, gopacket.Default)
	require.NotNil(t, packet.ErrorLayer())
	assert.True(t, packet.Metadata().Truncated)
}

func TestUMPLayerSplitsMixedStream(t *testing.T) {
	words := []uint32{
		0x2090_4060, // MIDI 1.0 channel voice, 1 word
		0x4090_4000, 0xFFFF_0000, // MIDI 2.0 channel voice, 2 words
		0xF000_0000, 0, 0, 0, // stream, 4 words
	}
	packet := gopacket.NewPacket(AppendWords(nil, words), UMPLayerType, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())
	l := packet.Layer(UMPLayerType).(*UMPLayer)
	require.Len(t, l.Packets, 3)
	assert.Equal(t, uint8(0x2), l.Packets[0].Type)
	assert.Equal(t, []uint32{0x4090_4000, 0xFFFF_0000}, l.Packets[1].Words)
	assert.Len(t, l.Packets[2].Words, 4)
	assert.Nil(t, packet.Layer(SysEx7LayerType))

	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, l))
	assert.Equal(t, AppendWords(nil, words), buf.Bytes())
}

func TestUMPLayerRejectsTruncatedStream(t *testing.T) {
	_, err := BytesToWords([]byte{0x30, 0x00, 0x00})
	require.ErrorIs(t, err, ErrMisalignedWords{Len: 3})

	_, err = SplitPackets([]uint32{0x2000_0000, 0x5000_0000, 0})
	require.ErrorIs(t, err, ErrTruncatedPacket{Type: 0x5, Need: 4, Have: 2})
}

func TestSysExBytesLayerRoundTrip(t *testing.T) {
	in := &SysExBytesLayer{Messages: [][]byte{payloadOf(5), {}, {0x7F}}}
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, in))
	assert.Equal(t, []byte{
		0xF0, 0, 1, 2, 3, 4, 0xF7,
		0xF0, 0xF7,
		0xF0, 0x7F, 0xF7,
	}, buf.Bytes())

	packet := gopacket.NewPacket(buf.Bytes(), SysExBytesLayerType, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())
	out := packet.Layer(SysExBytesLayerType).(*SysExBytesLayer)
	assert.Equal(t, in.Messages, out.Messages)
}

func TestSysExBytesLayerDecode(t *testing.T) {
	l := &SysExBytesLayer{}
	// a note on between two sysex messages is skipped
	data := []byte{0xF0, 0x01, 0xF7, 0x90, 0x40, 0x7F, 0xF0, 0x02, 0xF7}
	require.NoError(t, l.DecodeFromBytes(data, gopacket.NilDecodeFeedback))
	assert.Equal(t, [][]byte{{0x01}, {0x02}}, l.Messages)

	err := l.DecodeFromBytes([]byte{0xF0, 0x01, 0xF8, 0xF7}, gopacket.NilDecodeFeedback)
	require.ErrorIs(t, err, sysex7.ErrUnexpectedStatus)

	rt := &SysExBytesLayer{AllowRealTime: true}
	require.NoError(t, rt.DecodeFromBytes([]byte{0xF0, 0x01, 0xF8, 0xF7}, gopacket.NilDecodeFeedback))
	assert.Equal(t, [][]byte{{0x01}}, rt.Messages)

	err = l.DecodeFromBytes([]byte{0xF0, 0x01}, gopacket.NilDecodeFeedback)
	require.ErrorIs(t, err, ErrUnterminatedSysEx{Len: 2})

	limited := &SysExBytesLayer{MaxBytes: 3}
	err = limited.DecodeFromBytes([]byte{0xF0, 0x01, 0x02, 0xF7}, gopacket.NilDecodeFeedback)
	require.ErrorIs(t, err, buffer.ErrBufferOverflow{})
}

func TestSysExBytesLayerRejectsHighPayload(t *testing.T) {
	l := &SysExBytesLayer{Messages: [][]byte{{0x90}}}
	err := gopacket.SerializeLayers(gopacket.NewSerializeBuffer(), gopacket.SerializeOptions{}, l)
	require.ErrorIs(t, err, ErrPayloadByte{Offset: 0, Value: 0x90})
}
