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
	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
)

// Accumulator collects one F0 .. F7 SysEx from a legacy MIDI byte stream.
// It is not safe for concurrent use.
type Accumulator struct {
	buf           buffer.Mutable[uint8]
	end           int
	done          bool
	allowRealTime bool
	metrics       *metrics.SysexMetrics
}

// NewAccumulator returns an accumulator with an unbounded owned buffer
func NewAccumulator() *Accumulator {
	return NewAccumulatorWithBuffer(buffer.NewDefault[uint8, buffer.Vec[uint8]]())
}

// NewAccumulatorWithBuffer returns an accumulator collecting into buf.
// The current contents of buf are zeroed.
func NewAccumulatorWithBuffer(buf buffer.Mutable[uint8]) *Accumulator {
	buffer.Fill(buf, 0)
	return &Accumulator{buf: buf}
}

// AllowRealTime lets real-time bytes (0xF8 - 0xFF) interleave with a run.
// They are skipped, not buffered. Without it they abort the run.
func (a *Accumulator) AllowRealTime(allow bool) *Accumulator {
	a.allowRealTime = allow
	return a
}

func (a *Accumulator) WithMetrics(m *metrics.SysexMetrics) *Accumulator {
	a.metrics = m
	return a
}

// Reset drops any buffered bytes
func (a *Accumulator) Reset() {
	a.end = 0
	a.done = false
}

// Buffer returns the bytes collected for the current run
func (a *Accumulator) Buffer() []byte {
	return a.buf.Units()[:a.end]
}

// Message returns the completed SysEx after Feed reported it
func (a *Accumulator) Message() (BytesMessage, bool) {
	if !a.done {
		return BytesMessage{}, false
	}
	return BytesMessage{data: a.Buffer()}, true
}

// Feed consumes data until a SysEx completes or data runs out. It returns
// the number of bytes consumed and whether Message holds a completed
// SysEx. Bytes outside a run are skipped. A status byte inside a run
// drops the run and fails with ErrUnexpectedStatus. On overflow the run
// is kept and the offending byte is not consumed.
func (a *Accumulator) Feed(data []byte) (int, bool, error) {
	if a.done {
		a.Reset()
	}
	for i, b := range data {
		switch {
		case a.end == 0:
			if b != StartByte {
				continue
			}
		case b == EndByte:
			if err := a.push(b); err != nil {
				return i, false, err
			}
			a.done = true
			a.metrics.RecordMessage(metrics.EncodingBytes, a.end-2)
			log.Debug("sysex accumulator: message of %d bytes", a.end)
			return i + 1, true, nil
		case b >= 0xF8 && a.allowRealTime:
			continue
		case b&0x80 != 0:
			log.Debug("sysex accumulator: status byte 0x%02X inside sysex after %d bytes", b, a.end)
			a.Reset()
			a.metrics.RecordError(metrics.EncodingBytes, metrics.KindInvalid)
			return i + 1, false, ErrUnexpectedStatus
		}
		if err := a.push(b); err != nil {
			return i, false, err
		}
	}
	return len(data), false, nil
}

func (a *Accumulator) push(b byte) error {
	if err := buffer.TryGrow(a.buf, a.end+1); err != nil {
		a.metrics.RecordError(metrics.EncodingBytes, metrics.KindOverflow)
		return err
	}
	a.buf.UnitsMut()[a.end] = b
	a.end++
	return nil
}
