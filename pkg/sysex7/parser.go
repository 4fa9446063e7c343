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
	"fmt"

	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
)

type State int

const (
	ExpectingStart State = iota
	ExpectingEnd
	Finished
)

func (s State) String() string {
	switch s {
	case ExpectingStart:
		return "ExpectingStart"
	case ExpectingEnd:
		return "ExpectingEnd"
	case Finished:
		return "Finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Parser reassembles SysEx7 fragments into a Message. Fragments must
// arrive in protocol order. A rejected fragment never changes the state
// or the accumulated words. Parser is not safe for concurrent use.
type Parser struct {
	state   State
	index   int
	buf     buffer.Mutable[uint32]
	metrics *metrics.SysexMetrics
}

// NewParser returns a parser accumulating into an unbounded owned buffer
func NewParser() *Parser {
	return NewParserWithBuffer(buffer.NewDefault[uint32, buffer.Vec[uint32]]())
}

// NewParserWithBuffer returns a parser accumulating into buf. The message
// can grow only as far as buf allows.
func NewParserWithBuffer(buf buffer.Mutable[uint32]) *Parser {
	return &Parser{buf: buf}
}

// WithMetrics makes the parser record its activity into m
func (p *Parser) WithMetrics(m *metrics.SysexMetrics) *Parser {
	p.metrics = m
	return p
}

func (p *Parser) State() State { return p.state }

// Buffer returns the words accumulated so far
func (p *Parser) Buffer() []uint32 {
	return p.buf.Units()[:p.index]
}

// Message returns the reassembled message once the parser is Finished
func (p *Parser) Message() (Message, bool) {
	if p.state != Finished {
		return Message{}, false
	}
	return Message{data: p.Buffer()}, true
}

// Clear drops the accumulated words and waits for a new message
func (p *Parser) Clear() {
	p.index = 0
	p.state = ExpectingStart
}

// Parse feeds one fragment. It returns the message and true when the
// fragment completes it. The returned message is valid until the next
// call that changes the parser.
func (p *Parser) Parse(f Fragment) (Message, bool, error) {
	if p.state == Finished {
		p.Clear()
	}

	status := f.Status()
	next := p.state
	switch p.state {
	case ExpectingStart:
		switch status {
		case StatusComplete:
			next = Finished
		case StatusStart:
			next = ExpectingEnd
		default:
			return p.reject(status, ErrExpectedStart)
		}
	case ExpectingEnd:
		switch status {
		case StatusContinue:
		case StatusEnd:
			next = Finished
		default:
			return p.reject(status, ErrExpectedEnd)
		}
	case Finished:
		panic("sysex7: parser finished inside transition")
	}

	if err := p.append(f); err != nil {
		p.metrics.RecordError(metrics.EncodingUMP, metrics.KindOverflow)
		log.Debug("sysex7 parser: %s fragment does not fit: %s", status, err)
		return Message{}, false, err
	}
	p.metrics.RecordFragment(status.String())
	log.Debug("sysex7 parser: %s fragment, %s -> %s", status, p.state, next)
	p.state = next

	if p.state != Finished {
		return Message{}, false, nil
	}
	m := Message{data: p.Buffer()}
	p.metrics.RecordMessage(metrics.EncodingUMP, m.Len())
	return m, true, nil
}

// ParseRaw validates data as a SysEx7 packet and parses it
func (p *Parser) ParseRaw(data []uint32) (Message, bool, error) {
	pk, err := NewPacket(data)
	if err != nil {
		p.metrics.RecordError(metrics.EncodingUMP, metrics.KindInvalid)
		return Message{}, false, err
	}
	return p.Parse(pk.Fragment())
}

func (p *Parser) reject(status Status, err error) (Message, bool, error) {
	p.metrics.RecordError(metrics.EncodingUMP, metrics.KindFraming)
	log.Debug("sysex7 parser: %s fragment rejected in state %s", status, p.state)
	return Message{}, false, err
}

// append grows the storage by one fragment and copies it at the cursor.
// The cursor moves only when the grow succeeds.
func (p *Parser) append(f Fragment) error {
	need := p.index + FragmentWords
	if err := buffer.TryGrow(p.buf, need); err != nil {
		return err
	}
	copy(p.buf.UnitsMut()[p.index:need], f.Data())
	p.index = need
	return nil
}
