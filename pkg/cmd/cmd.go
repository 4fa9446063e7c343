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


package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-ump/pkg/config"
	"jinr.ru/greenlab/go-ump/pkg/layers"
	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/srv"
	"jinr.ru/greenlab/go-ump/pkg/store"
	"jinr.ru/greenlab/go-ump/pkg/sysex7"
)

// StdinFile is the file name that makes ReadInput read from the given reader
const StdinFile = "-"

var ErrNoInput = errors.New("no input: pass hex arguments or --file")

// ReadInput returns the raw bytes of file when set, otherwise the bytes
// spelled by the hex arguments
func ReadInput(in io.Reader, args []string, file string) ([]byte, error) {
	switch file {
	case "":
	case StdinFile:
		return io.ReadAll(in)
	default:
		return os.ReadFile(file)
	}
	if len(args) == 0 {
		return nil, ErrNoInput
	}
	data, err := srv.ParseHex(strings.Join(args, " "))
	if err != nil {
		return nil, fmt.Errorf("parse hex input: %w", err)
	}
	return data, nil
}

// Codec runs the local decoders and encoders with the limits of a config
type Codec struct {
	*config.Config
}

func NewCodec(cfg *config.Config) *Codec {
	return &Codec{Config: cfg}
}

// DecodeUMP reassembles the SysEx7 messages of a big-endian UMP stream
func (c *Codec) DecodeUMP(data []byte) ([]layers.SysEx7Message, error) {
	var umpLayer layers.UMPLayer
	sysexLayer := layers.SysEx7Layer{MaxWords: c.ParserConfig.MaxWords}
	parser := gopacket.NewDecodingLayerParser(layers.UMPLayerType, &umpLayer, &sysexLayer)
	parser.IgnoreUnsupported = true
	decoded := []gopacket.LayerType{}
	if err := parser.DecodeLayers(data, &decoded); err != nil {
		return nil, err
	}
	log.Debug("Decoded layers: %v", decoded)
	for _, t := range decoded {
		if t == layers.SysEx7LayerType {
			return sysexLayer.Messages, nil
		}
	}
	for _, p := range umpLayer.Packets {
		if p.Type != sysex7.TypeCode {
			return nil, layers.ErrNotSysEx7{Type: p.Type}
		}
	}
	return nil, nil
}

// DecodeBytes extracts the payloads of the F0 .. F7 messages of a byte stream
func (c *Codec) DecodeBytes(data []byte) ([][]byte, error) {
	layer := layers.SysExBytesLayer{
		AllowRealTime: c.AccumulatorConfig.AllowRealTime,
		MaxBytes:      c.AccumulatorConfig.MaxBytes,
	}
	if err := layer.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, err
	}
	return layer.Messages, nil
}

func serialize(l gopacket.SerializableLayer) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeUMP returns the fragments carrying payload as big-endian words
func (c *Codec) EncodeUMP(group uint8, payload []byte) ([]byte, error) {
	if group > store.MaxGroup {
		return nil, store.ErrInvalidGroup{Group: group}
	}
	return serialize(&layers.SysEx7Layer{
		Messages: []layers.SysEx7Message{{Group: group, Payload: payload}},
	})
}

// EncodeBytes returns payload framed by F0 and F7
func (c *Codec) EncodeBytes(payload []byte) ([]byte, error) {
	return serialize(&layers.SysExBytesLayer{Messages: [][]byte{payload}})
}

// PrintPackets writes one UMP packet per line
func PrintPackets(w io.Writer, data []byte) error {
	words, err := layers.BytesToWords(data)
	if err != nil {
		return err
	}
	packets, err := layers.SplitPackets(words)
	if err != nil {
		return err
	}
	for _, p := range packets {
		fields := make([]string, len(p.Words))
		for i, word := range p.Words {
			fields[i] = fmt.Sprintf("%08x", word)
		}
		fmt.Fprintln(w, strings.Join(fields, " "))
	}
	return nil
}

// PrintMessage writes a payload as "group: hex"
func PrintMessage(w io.Writer, group uint8, payload []byte) {
	fmt.Fprintf(w, "%2d: % x\n", group, payload)
}
