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


// go-ump API
//
// RESTful APIs to decode, encode and store MIDI System Exclusive messages.
// The API description is served at /swagger.json and rendered at /docs.
package srv

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/google/gopacket"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jinr.ru/greenlab/go-ump/pkg/buffer"
	"jinr.ru/greenlab/go-ump/pkg/config"
	"jinr.ru/greenlab/go-ump/pkg/layers"
	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
	"jinr.ru/greenlab/go-ump/pkg/store"
	"jinr.ru/greenlab/go-ump/pkg/ump"
)

const shutdownTimeout = 5 * time.Second

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	state    *store.State
	registry *prometheus.Registry
	metrics  *metrics.SysexMetrics
	doc      *loads.Document
}

// NewApiServer creates a server. state may be nil, the dump routes then
// answer 503.
func NewApiServer(ctx context.Context, cfg *config.Config, state *store.State) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s", cfg.ListenAddress())
	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	s := &ApiServer{
		Context:  ctx,
		Config:   cfg,
		state:    state,
		registry: registry,
		metrics:  metrics.NewSysexMetricsWithRegistry(registry),
		doc:      doc,
	}
	s.configureRouter()
	return s, nil
}

// Handler returns the router wrapped with the API description, request
// logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	var h http.Handler = s.Router
	h = middleware.Redoc(middleware.RedocOpts{Title: s.doc.Spec().Info.Title}, h)
	h = middleware.Spec("/", s.doc.Raw(), h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return handlers.LoggingHandler(log.Writer(), h)
}

// Run serves until the server context is done
func (s *ApiServer) Run() error {
	log.Info("Starting API server: %s", s.Config.ListenAddress())
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.Config.ListenAddress(),
	}
	go func() {
		<-s.Context.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("API server shutdown: %s", err)
		}
	}()
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	s.Router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.Use(func(h http.Handler) http.Handler {
		return handlers.ContentTypeHandler(h, "application/json")
	})
	subRouter.HandleFunc("/sysex7/decode", s.handleSysex7Decode()).Methods("POST")
	subRouter.HandleFunc("/sysex7/encode", s.handleSysex7Encode()).Methods("POST")
	subRouter.HandleFunc("/sysex/bytes/decode", s.handleBytesDecode()).Methods("POST")
	subRouter.HandleFunc("/sysex/bytes/encode", s.handleBytesEncode()).Methods("POST")
	subRouter.HandleFunc("/dumps", s.handleDumpList()).Methods("GET")
	subRouter.HandleFunc("/dumps", s.handleDumpCreate()).Methods("POST")
	subRouter.HandleFunc("/dumps/{id}", s.handleDumpGet()).Methods("GET")
	subRouter.HandleFunc("/dumps/{id}", s.handleDumpDelete()).Methods("DELETE")
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

func errorStatus(err error) int {
	var (
		badRequest   ErrBadRequest
		notFound     store.ErrDumpNotFound
		badGroup     store.ErrInvalidGroup
		badEncoding  store.ErrInvalidEncoding
		badPayload   layers.ErrPayloadByte
		disabled     ErrStoreDisabled
		invalidData  ump.ErrInvalidData
		misaligned   layers.ErrMisalignedWords
		truncated    layers.ErrTruncatedPacket
		incomplete   layers.ErrIncompleteSysEx
		notSysEx7    layers.ErrNotSysEx7
		unterminated layers.ErrUnterminatedSysEx
		groupRange   layers.ErrGroupRange
		overflow     buffer.ErrBufferOverflow
	)
	switch {
	case errors.As(err, &overflow):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &disabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &badRequest), errors.As(err, &badGroup), errors.As(err, &badEncoding),
		errors.As(err, &badPayload), errors.As(err, &invalidData), errors.As(err, &misaligned),
		errors.As(err, &truncated), errors.As(err, &incomplete), errors.As(err, &notSysEx7),
		errors.As(err, &unterminated), errors.As(err, &groupRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errorStatus(err)
	log.Debug("Request failed with %d: %s", code, err)
	http.Error(w, err.Error(), code)
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrBadRequest{What: "body", Err: err}
	}
	return nil
}

func checkGroup(group uint8) error {
	if group > store.MaxGroup {
		return ErrBadRequest{What: "group", Err: store.ErrInvalidGroup{Group: group}}
	}
	return nil
}

func (s *ApiServer) requestWords(req *DecodeRequest) ([]uint32, error) {
	if len(req.Hex) == 0 {
		return req.Words, nil
	}
	if len(req.Words) > 0 {
		return nil, ErrBadRequest{What: "words and hex are mutually exclusive"}
	}
	return layers.BytesToWords(req.Hex)
}

// storeMessages saves every message as a dump and records the dump IDs
func (s *ApiServer) storeMessages(messages []Message, name, encoding string) error {
	if s.state == nil {
		return ErrStoreDisabled{}
	}
	for i := range messages {
		d := &store.Dump{
			Name:     name,
			Group:    messages[i].Group,
			Encoding: encoding,
			Payload:  messages[i].Payload,
		}
		if err := s.state.Put(d); err != nil {
			return err
		}
		messages[i].DumpID = d.ID
	}
	return nil
}

func (s *ApiServer) handleSysex7Decode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &DecodeRequest{}
		if err := decodeBody(r, req); err != nil {
			writeError(w, err)
			return
		}
		words, err := s.requestWords(req)
		if err != nil {
			writeError(w, err)
			return
		}
		layer := &layers.SysEx7Layer{MaxWords: s.Config.ParserConfig.MaxWords, Metrics: s.metrics}
		if err := layer.DecodeWords(words); err != nil {
			writeError(w, err)
			return
		}
		resp := DecodeResponse{Messages: make([]Message, 0, len(layer.Messages))}
		for _, m := range layer.Messages {
			resp.Messages = append(resp.Messages, Message{Group: m.Group, Payload: m.Payload})
		}
		if req.Store {
			if err := s.storeMessages(resp.Messages, req.Name, metrics.EncodingUMP); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *ApiServer) handleSysex7Encode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &EncodeRequest{}
		if err := decodeBody(r, req); err != nil {
			writeError(w, err)
			return
		}
		if err := checkGroup(req.Group); err != nil {
			writeError(w, err)
			return
		}
		words, err := layers.EncodeSysEx7(req.Group, req.Payload)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, EncodeResponse{Words: words, Hex: layers.AppendWords(nil, words)})
	}
}

func (s *ApiServer) handleBytesDecode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &DecodeRequest{}
		if err := decodeBody(r, req); err != nil {
			writeError(w, err)
			return
		}
		if len(req.Words) > 0 {
			writeError(w, ErrBadRequest{What: "byte stream must be given as hex"})
			return
		}
		layer := &layers.SysExBytesLayer{
			AllowRealTime: s.Config.AccumulatorConfig.AllowRealTime,
			MaxBytes:      s.Config.AccumulatorConfig.MaxBytes,
			Metrics:       s.metrics,
		}
		if err := layer.DecodeFromBytes(req.Hex, gopacket.NilDecodeFeedback); err != nil {
			writeError(w, err)
			return
		}
		resp := DecodeResponse{Messages: make([]Message, 0, len(layer.Messages))}
		for _, payload := range layer.Messages {
			resp.Messages = append(resp.Messages, Message{Payload: payload})
		}
		if req.Store {
			if err := s.storeMessages(resp.Messages, req.Name, metrics.EncodingBytes); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *ApiServer) handleBytesEncode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &EncodeRequest{}
		if err := decodeBody(r, req); err != nil {
			writeError(w, err)
			return
		}
		buf := gopacket.NewSerializeBuffer()
		layer := &layers.SysExBytesLayer{Messages: [][]byte{req.Payload}}
		if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, layer); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, EncodeResponse{Hex: buf.Bytes()})
	}
}

func (s *ApiServer) handleDumpList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.state == nil {
			writeError(w, ErrStoreDisabled{})
			return
		}
		var (
			dumps []*store.Dump
			err   error
		)
		if g := r.URL.Query().Get("group"); g != "" {
			group, perr := strconv.ParseUint(g, 10, 8)
			if perr != nil {
				writeError(w, ErrBadRequest{What: "group", Err: perr})
				return
			}
			dumps, err = s.state.List(uint8(group))
		} else {
			dumps, err = s.state.All()
		}
		if err != nil {
			writeError(w, err)
			return
		}
		resp := make([]Dump, 0, len(dumps))
		for _, d := range dumps {
			resp = append(resp, NewDump(d))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *ApiServer) handleDumpCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.state == nil {
			writeError(w, ErrStoreDisabled{})
			return
		}
		req := &DumpRequest{}
		if err := decodeBody(r, req); err != nil {
			writeError(w, err)
			return
		}
		d := &store.Dump{
			Name:     req.Name,
			Group:    req.Group,
			Encoding: req.Encoding,
			Payload:  req.Payload,
		}
		if err := s.state.Put(d); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, NewDump(d))
	}
}

func (s *ApiServer) handleDumpGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.state == nil {
			writeError(w, ErrStoreDisabled{})
			return
		}
		d, err := s.state.Get(mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NewDump(d))
	}
}

func (s *ApiServer) handleDumpDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.state == nil {
			writeError(w, ErrStoreDisabled{})
			return
		}
		if err := s.state.Delete(mux.Vars(r)["id"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
