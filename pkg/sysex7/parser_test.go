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

import (
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
	"jinr.ru/greenlab/go-ump/pkg/ump"
)

func TestParseRawTrivialComplete(t *testing.T) {
	p := NewParser()
	m, done, err := p.ParseRaw([]uint32{0x3000_0000, 0x0})
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, []uint32{0x3000_0000, 0x0}, m.Data())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, uint8(0), m.Group())
	assert.Equal(t, Finished, p.State())
}

func TestParseRawStartAndEnd(t *testing.T) {
	p := NewParser()
	_, done, err := p.ParseRaw([]uint32{0x3010_0000, 0x0})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, ExpectingEnd, p.State())
	_, ok := p.Message()
	assert.False(t, ok)

	m, done, err := p.ParseRaw([]uint32{0x3030_0000, 0x0})
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, []uint32{0x3010_0000, 0x0, 0x3030_0000, 0x0}, m.Data())

	got, ok := p.Message()
	require.True(t, ok)
	assert.Equal(t, m.Data(), got.Data())
}

func TestParseRawWrongPacketType(t *testing.T) {
	p := NewParser()
	_, _, err := p.ParseRaw([]uint32{0x3010_0000, 0x0})
	require.NoError(t, err)

	_, done, err := p.ParseRaw([]uint32{0x2000_0000, 0x0})
	require.ErrorIs(t, err, ump.ErrIncorrectType)
	assert.False(t, done)
	assert.Equal(t, ExpectingEnd, p.State())
	assert.Equal(t, []uint32{0x3010_0000, 0x0}, p.Buffer())
}

func TestParseRejectsContinueAndEndWhileExpectingStart(t *testing.T) {
	for _, word := range []uint32{0x3020_0000, 0x3030_0000} {
		p := NewParser()
		_, done, err := p.ParseRaw([]uint32{word, 0x0})
		require.ErrorIs(t, err, ErrExpectedStart)
		assert.False(t, done)
		assert.Equal(t, ExpectingStart, p.State())
		assert.Empty(t, p.Buffer())

		// a fresh start is accepted right away
		_, done, err = p.ParseRaw([]uint32{0x3010_0000, 0x0})
		require.NoError(t, err)
		assert.False(t, done)
	}
}

func TestParseRejectsStartAndCompleteWhileExpectingEnd(t *testing.T) {
	for _, word := range []uint32{0x3010_0000, 0x3000_0000} {
		p := NewParser()
		_, _, err := p.ParseRaw([]uint32{0x3012_0102, 0x0})
		require.NoError(t, err)

		_, done, err := p.ParseRaw([]uint32{word, 0x0})
		require.ErrorIs(t, err, ErrExpectedEnd)
		assert.False(t, done)
		assert.Equal(t, ExpectingEnd, p.State())
		assert.Equal(t, []uint32{0x3012_0102, 0x0}, p.Buffer())

		m, done, err := p.ParseRaw([]uint32{0x3031_0300, 0x0})
		require.NoError(t, err)
		require.True(t, done)
		assert.Equal(t, []byte{1, 2, 3}, m.Bytes())
	}
}

func TestParseStartAfterComplete(t *testing.T) {
	p := NewParser()
	_, done, err := p.ParseRaw([]uint32{0x3000_0000, 0x0})
	require.NoError(t, err)
	require.True(t, done)

	_, done, err = p.ParseRaw([]uint32{0x3010_0000, 0x0})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, ExpectingEnd, p.State())
	assert.Equal(t, []uint32{0x3010_0000, 0x0}, p.Buffer())
}

func TestParseAfterFinishedClearsFirst(t *testing.T) {
	p := NewParser()
	_, _, err := p.ParseRaw([]uint32{0x3000_0000, 0x0})
	require.NoError(t, err)

	_, _, err = p.ParseRaw([]uint32{0x3020_0000, 0x0})
	require.ErrorIs(t, err, ErrExpectedStart)
	assert.Equal(t, ExpectingStart, p.State())
	assert.Empty(t, p.Buffer())
}

func TestParseMultiFragmentPayload(t *testing.T) {
	p := NewParser()
	statuses := []Status{StatusStart, StatusContinue, StatusEnd}
	var m Message
	for i, s := range statuses {
		f, err := NewBuilder(make([]uint32, 2)).
			Group(3).
			Status(s).
			Payload(span(uint8(i*6), uint8(i*6+6))).
			Build()
		require.NoError(t, err)
		var done bool
		m, done, err = p.Parse(f)
		require.NoError(t, err)
		assert.Equal(t, s == StatusEnd, done)
	}

	assert.Equal(t, 18, m.Len())
	assert.Equal(t, uint8(3), m.Group())
	expected := make([]byte, 18)
	for i := range expected {
		expected[i] = byte(i)
	}
	assert.Equal(t, expected, m.Bytes())

	var got []Status
	for f := range m.Fragments() {
		got = append(got, f.Status())
	}
	assert.Equal(t, statuses, got)
}

func TestParseClear(t *testing.T) {
	p := NewParser()
	_, _, err := p.ParseRaw([]uint32{0x3010_0000, 0x0})
	require.NoError(t, err)
	p.Clear()
	assert.Equal(t, ExpectingStart, p.State())
	assert.Empty(t, p.Buffer())

	_, done, err := p.ParseRaw([]uint32{0x3000_0000, 0x0})
	require.NoError(t, err)
	assert.True(t, done)
}

func TestParseOverflowKeepsState(t *testing.T) {
	storages := map[string]buffer.Mutable[uint32]{
		"fixed":  buffer.NewFixed[uint32](2),
		"vec":    buffer.NewVec[uint32](2),
		"borrow": buffer.Borrow(make([]uint32, 2)),
	}
	for name, storage := range storages {
		t.Run(name, func(t *testing.T) {
			p := NewParserWithBuffer(storage)
			_, _, err := p.ParseRaw([]uint32{0x3011_0500, 0x0})
			require.NoError(t, err)

			_, done, err := p.ParseRaw([]uint32{0x3030_0000, 0x0})
			require.ErrorIs(t, err, buffer.ErrBufferOverflow{})
			assert.False(t, done)
			assert.Equal(t, ExpectingEnd, p.State())
			assert.Equal(t, []uint32{0x3011_0500, 0x0}, p.Buffer())

			p.Clear()
			m, done, err := p.ParseRaw([]uint32{0x3001_0700, 0x0})
			require.NoError(t, err)
			require.True(t, done)
			assert.Equal(t, []byte{7}, m.Bytes())
		})
	}
}

func TestParserMetrics(t *testing.T) {
	m := metrics.NewSysexMetricsWithRegistry(prometheus.NewRegistry())
	p := NewParser().WithMetrics(m)

	_, _, _ = p.ParseRaw([]uint32{0x3010_0000, 0x0})
	_, _, _ = p.ParseRaw([]uint32{0x3000_0000, 0x0})
	_, _, _ = p.ParseRaw([]uint32{0x3033_0102, 0x0300_0000})
	_, _, _ = p.ParseRaw([]uint32{0x2000_0000, 0x0})

	value := func(c prometheus.Counter) float64 {
		d := &dto.Metric{}
		require.NoError(t, c.Write(d))
		return d.Counter.GetValue()
	}
	assert.Equal(t, 1.0, value(m.FragmentsTotal.WithLabelValues("Start")))
	assert.Equal(t, 1.0, value(m.FragmentsTotal.WithLabelValues("End")))
	assert.Equal(t, 1.0, value(m.MessagesTotal.WithLabelValues(metrics.EncodingUMP)))
	assert.Equal(t, 1.0, value(m.ErrorsTotal.WithLabelValues(metrics.EncodingUMP, metrics.KindFraming)))
	assert.Equal(t, 1.0, value(m.ErrorsTotal.WithLabelValues(metrics.EncodingUMP, metrics.KindInvalid)))
}

func TestNewMessage(t *testing.T) {
	m, err := NewMessage([]uint32{0x3010_0000, 0x0, 0x3020_0000, 0x0, 0x3030_0000, 0x0})
	require.NoError(t, err)
	assert.Len(t, m.Data(), 6)

	tests := map[string][]uint32{
		"empty":           {},
		"odd":             {0x3000_0000, 0x0, 0x3000_0000},
		"lone start":      {0x3010_0000, 0x0},
		"two starts":      {0x3010_0000, 0x0, 0x3010_0000, 0x0},
		"complete in run": {0x3010_0000, 0x0, 0x3000_0000, 0x0},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewMessage(data)
			require.ErrorIs(t, err, ErrMalformedMessage)
		})
	}

	_, err = NewMessage([]uint32{0x2000_0000, 0x0})
	require.ErrorIs(t, err, ump.ErrIncorrectType)
}

func TestParseBuiltCompleteFragments(t *testing.T) {
	p := NewParser()
	for n := 0; n <= MaxFragmentPayload; n++ {
		payload := make([]uint8, n)
		for i := range payload {
			payload[i] = uint8(0x40 + i)
		}
		f, err := NewBuilder(make([]uint32, 2)).
			Group(0x7).
			Status(StatusComplete).
			Payload(slices.Values(payload)).
			Build()
		require.NoError(t, err)

		m, done, err := p.Parse(f)
		require.NoError(t, err, "payload of %d bytes", n)
		require.True(t, done)
		assert.Equal(t, payload, m.Bytes())
		assert.Equal(t, n, m.Len())
		assert.Equal(t, uint8(0x7), m.Group())
	}
}

func TestZeroMessage(t *testing.T) {
	p := NewParser()
	m, done, err := p.ParseRaw([]uint32{0x3016_0000, 0})
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, uint8(0), m.Group())
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Bytes())
}
