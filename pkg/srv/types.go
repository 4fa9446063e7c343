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

package srv

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"jinr.ru/greenlab/go-ump/pkg/store"
)

// HexBytes is a byte slice carried as a hexadecimal string in JSON.
// Spaces are accepted on input.
type HexBytes []byte

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h))
}

func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := ParseHex(s)
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// ParseHex decodes a hexadecimal string, ignoring whitespace
func ParseHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.Join(strings.Fields(s), ""))
}

// Message is a decoded SysEx
type Message struct {
	Group   uint8    `json:"group"`
	Payload HexBytes `json:"payload"`
	// DumpID is set when the message was stored
	DumpID string `json:"dumpId,omitempty"`
}

// DecodeRequest carries UMP words, either as numbers or as a big-endian hex stream
type DecodeRequest struct {
	Words []uint32 `json:"words,omitempty"`
	Hex   HexBytes `json:"hex,omitempty"`
	Store bool     `json:"store,omitempty"`
	Name  string   `json:"name,omitempty"`
}

type DecodeResponse struct {
	Messages []Message `json:"messages"`
}

type EncodeRequest struct {
	Group   uint8    `json:"group"`
	Payload HexBytes `json:"payload"`
}

type EncodeResponse struct {
	Words []uint32 `json:"words,omitempty"`
	Hex   HexBytes `json:"hex"`
}

// DumpRequest stores a payload without going through a decoder
type DumpRequest struct {
	Name     string   `json:"name,omitempty"`
	Group    uint8    `json:"group"`
	Encoding string   `json:"encoding"`
	Payload  HexBytes `json:"payload"`
}

type Dump struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Group    uint8    `json:"group"`
	Encoding string   `json:"encoding"`
	Payload  HexBytes `json:"payload"`
	Created  string   `json:"created"`
}

func NewDump(d *store.Dump) Dump {
	return Dump{
		ID:       d.ID,
		Name:     d.Name,
		Group:    d.Group,
		Encoding: d.Encoding,
		Payload:  d.Payload,
		Created:  d.Created.Format(time.RFC3339),
	}
}
