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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.ErrorIs(t, ChannelVoice2.Validate(nil), ErrSliceTooShort)
	require.ErrorIs(t, ChannelVoice2.Validate([]uint32{0x2000_0000, 0}), ErrIncorrectType)
	require.NoError(t, ChannelVoice2.Validate([]uint32{0x4000_0000}))

	err := Stream.Validate([]uint32{0x4000_0000})
	assert.True(t, errors.Is(err, ErrInvalidData{}))
	assert.False(t, errors.Is(err, ErrSliceTooShort))
	assert.Equal(t, "invalid data: incorrect message type", err.Error())
}

func TestPacketCopiesAndPads(t *testing.T) {
	tests := []struct {
		name string
		in   []uint32
		want []uint32
	}{
		{"exact", []uint32{0x4000_0000, 0x1234_5678}, []uint32{0x4000_0000, 0x1234_5678}},
		{"short", []uint32{0x4000_0000}, []uint32{0x4000_0000, 0}},
		{"long", []uint32{0x4000_0000, 1, 2, 3}, []uint32{0x4000_0000, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ChannelVoice2.Packet(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Data())
		})
	}

	_, err := Data128.Packet([]uint32{0x4000_0000})
	require.ErrorIs(t, err, ErrIncorrectType)
	_, err = Data128.Packet([]uint32{})
	require.ErrorIs(t, err, ErrSliceTooShort)
}

func TestPacketOwnsItsWords(t *testing.T) {
	in := []uint32{0x5000_0000, 1, 2, 3}
	p, err := Data128.Packet(in)
	require.NoError(t, err)
	in[1] = 0xFF
	assert.Equal(t, []uint32{0x5000_0000, 1, 2, 3}, p.Data())
}

func TestViewBorrows(t *testing.T) {
	in := []uint32{0x4000_0000, 0, 0xDEAD}
	v, err := ChannelVoice2.View(in)
	require.NoError(t, err)
	assert.Len(t, v.Data(), 2)

	v.SetGroup(0xA)
	assert.Equal(t, uint32(0x4A00_0000), in[0])
	assert.Equal(t, uint8(0xA), v.Group())
}

func TestSetChannel(t *testing.T) {
	p := NewPacket(ChannelVoice2)
	p.SetChannel(0x8)
	assert.Equal(t, []uint32{0x4008_0000, 0}, p.Data())
	assert.Equal(t, uint8(0x8), p.Channel())
}

func TestSetGroup(t *testing.T) {
	p := NewPacket(ChannelVoice2)
	p.SetGroup(0xA)
	assert.Equal(t, []uint32{0x4A00_0000, 0}, p.Data())
	assert.Equal(t, uint8(0xA), p.Group())
}

func TestCapabilityMisusePanics(t *testing.T) {
	p := NewPacket(Stream)
	assert.Panics(t, func() { p.Group() })
	assert.Panics(t, func() { p.SetChannel(1) })
	d := NewPacket(Data128)
	assert.NotPanics(t, func() { d.SetGroup(3) })
	assert.Panics(t, func() { d.Channel() })
}

func TestStreamFormat(t *testing.T) {
	tests := []struct {
		word uint32
		want Format
	}{
		{0xF000_0000, FormatComplete},
		{0xF400_0000, FormatStart},
		{0xF800_0000, FormatContinue},
		{0xFC00_0000, FormatEnd},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			p, err := Stream.Packet([]uint32{tt.word})
			require.NoError(t, err)
			assert.Equal(t, tt.want, StreamFormat(p.Data()))
		})
	}

	data := []uint32{0xF000_1234, 0, 0, 0}
	SetStreamFormat(data, FormatEnd)
	assert.Equal(t, uint32(0xFC00_1234), data[0])
}

func TestWordsForType(t *testing.T) {
	assert.Equal(t, 1, WordsForType(0x0))
	assert.Equal(t, 2, WordsForType(0x3))
	assert.Equal(t, 2, WordsForType(0x4))
	assert.Equal(t, 4, WordsForType(0x5))
	assert.Equal(t, 3, WordsForType(0xB))
	assert.Equal(t, 4, WordsForType(0xF))
}

func TestLookup(t *testing.T) {
	f, ok := Lookup(0x4)
	require.True(t, ok)
	assert.Equal(t, ChannelVoice2, f)
	_, ok = Lookup(0x9)
	assert.False(t, ok)
	_, ok = Lookup(0x10)
	assert.False(t, ok)
	assert.Panics(t, func() { Register(Family{Name: "bad", TypeCode: 0x9, Words: 3}) })
}
