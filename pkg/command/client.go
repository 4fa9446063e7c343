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


package command

import (
	"fmt"
	"net/http"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-ump/pkg/config"
	"jinr.ru/greenlab/go-ump/pkg/srv"
)

// ErrApi is a non successful response of the API server
type ErrApi struct {
	Status  string
	Message string
}

func (e ErrApi) Error() string {
	if e.Message == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: cfg.ApiEndpoint() + "/api",
	}
}

func (c *ApiClient) url(format string, v ...interface{}) string {
	return c.ApiPrefix + fmt.Sprintf(format, v...)
}

func check(r *req.Resp, code int) error {
	if r.Response().StatusCode != code {
		return ErrApi{Status: r.Response().Status, Message: r.String()}
	}
	return nil
}

func (c *ApiClient) decode(url string, request *srv.DecodeRequest) ([]srv.Message, error) {
	r, err := req.Post(url, req.BodyJSON(request))
	if err != nil {
		return nil, err
	}
	if err := check(r, http.StatusOK); err != nil {
		return nil, err
	}
	resp := &srv.DecodeResponse{}
	if err := r.ToJSON(resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *ApiClient) encode(url string, request *srv.EncodeRequest) (*srv.EncodeResponse, error) {
	r, err := req.Post(url, req.BodyJSON(request))
	if err != nil {
		return nil, err
	}
	if err := check(r, http.StatusOK); err != nil {
		return nil, err
	}
	resp := &srv.EncodeResponse{}
	if err := r.ToJSON(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DecodeSysEx7 sends UMP words to be reassembled
func (c *ApiClient) DecodeSysEx7(request *srv.DecodeRequest) ([]srv.Message, error) {
	return c.decode(c.url("/sysex7/decode"), request)
}

// EncodeSysEx7 sends a payload to be split into fragments
func (c *ApiClient) EncodeSysEx7(group uint8, payload []byte) (*srv.EncodeResponse, error) {
	return c.encode(c.url("/sysex7/encode"), &srv.EncodeRequest{Group: group, Payload: payload})
}

// DecodeBytes sends a MIDI 1.0 byte stream to be split into messages
func (c *ApiClient) DecodeBytes(request *srv.DecodeRequest) ([]srv.Message, error) {
	return c.decode(c.url("/sysex/bytes/decode"), request)
}

// EncodeBytes sends a payload to be framed by F0 and F7
func (c *ApiClient) EncodeBytes(payload []byte) ([]byte, error) {
	resp, err := c.encode(c.url("/sysex/bytes/encode"), &srv.EncodeRequest{Payload: payload})
	if err != nil {
		return nil, err
	}
	return resp.Hex, nil
}

// ListDumps returns the stored dumps of a group, or of every group when
// group is negative
func (c *ApiClient) ListDumps(group int) ([]srv.Dump, error) {
	var params []interface{}
	if group >= 0 {
		params = append(params, req.Param{"group": group})
	}
	r, err := req.Get(c.url("/dumps"), params...)
	if err != nil {
		return nil, err
	}
	if err := check(r, http.StatusOK); err != nil {
		return nil, err
	}
	var dumps []srv.Dump
	if err := r.ToJSON(&dumps); err != nil {
		return nil, err
	}
	return dumps, nil
}

func (c *ApiClient) GetDump(id string) (*srv.Dump, error) {
	r, err := req.Get(c.url("/dumps/%s", id))
	if err != nil {
		return nil, err
	}
	if err := check(r, http.StatusOK); err != nil {
		return nil, err
	}
	dump := &srv.Dump{}
	if err := r.ToJSON(dump); err != nil {
		return nil, err
	}
	return dump, nil
}

func (c *ApiClient) PutDump(request *srv.DumpRequest) (*srv.Dump, error) {
	r, err := req.Post(c.url("/dumps"), req.BodyJSON(request))
	if err != nil {
		return nil, err
	}
	if err := check(r, http.StatusCreated); err != nil {
		return nil, err
	}
	dump := &srv.Dump{}
	if err := r.ToJSON(dump); err != nil {
		return nil, err
	}
	return dump, nil
}

func (c *ApiClient) DeleteDump(id string) error {
	r, err := req.Delete(c.url("/dumps/%s", id))
	if err != nil {
		return err
	}
	return check(r, http.StatusNoContent)
}
