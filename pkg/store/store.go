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

// Package store keeps reassembled SysEx dumps in a bbolt database,
// one bucket per UMP group.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
)

const (
	BucketPrefix = "group_"
	MaxGroup     = 15
)

// Dump is a stored SysEx payload
type Dump struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Group    uint8     `json:"group"`
	Encoding string    `json:"encoding"`
	Payload  []byte    `json:"payload"`
	Created  time.Time `json:"created"`
}

type State struct {
	DB *bbolt.DB
}

// NewState opens or creates the database at path
func NewState(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open dump store %s: %w", path, err)
	}
	return &State{DB: db}, nil
}

// Close ...
func (s *State) Close() error {
	return s.DB.Close()
}

func BucketName(group uint8) string {
	return fmt.Sprintf("%s%02d", BucketPrefix, group)
}

func validate(d *Dump) error {
	if d.Group > MaxGroup {
		return ErrInvalidGroup{Group: d.Group}
	}
	switch d.Encoding {
	case metrics.EncodingUMP, metrics.EncodingBytes:
		return nil
	}
	return ErrInvalidEncoding{Encoding: d.Encoding}
}

// Put stores d, assigning an ID and a creation time when missing
func (s *State) Put(d *Dump) error {
	if err := validate(d); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Created.IsZero() {
		d.Created = time.Now().UTC()
	}
	log.Debug("Storing dump: %s group: %d size: %d", d.ID, d.Group, len(d.Payload))
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketName(d.Group)))
		if err != nil {
			return err
		}
		dBytes, err := yaml.Marshal(d)
		if err != nil {
			return err
		}
		return b.Put([]byte(d.ID), dBytes)
	})
}

func groupBuckets(tx *bbolt.Tx, fn func(b *bbolt.Bucket) error) error {
	return tx.ForEach(func(name []byte, b *bbolt.Bucket) error {
		if !strings.HasPrefix(string(name), BucketPrefix) {
			return nil
		}
		return fn(b)
	})
}

var errStop = errors.New("stop")

// Get looks up a dump by ID in every group
func (s *State) Get(id string) (*Dump, error) {
	var dump *Dump
	err := s.DB.View(func(tx *bbolt.Tx) error {
		return groupBuckets(tx, func(b *bbolt.Bucket) error {
			dBytes := b.Get([]byte(id))
			if dBytes == nil {
				return nil
			}
			dump = &Dump{}
			if err := yaml.Unmarshal(dBytes, dump); err != nil {
				return err
			}
			return errStop
		})
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	if dump == nil {
		return nil, ErrDumpNotFound{ID: id}
	}
	return dump, nil
}

func readBucket(b *bbolt.Bucket, dumps []*Dump) ([]*Dump, error) {
	err := b.ForEach(func(_, dBytes []byte) error {
		d := &Dump{}
		if err := yaml.Unmarshal(dBytes, d); err != nil {
			log.Error("Error while unmarshalling dump %s", err)
			return err
		}
		dumps = append(dumps, d)
		return nil
	})
	return dumps, err
}

func sortDumps(dumps []*Dump) {
	sort.SliceStable(dumps, func(i, j int) bool {
		return dumps[i].Created.Before(dumps[j].Created)
	})
}

// List returns the dumps of one group, oldest first
func (s *State) List(group uint8) ([]*Dump, error) {
	if group > MaxGroup {
		return nil, ErrInvalidGroup{Group: group}
	}
	var dumps []*Dump
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName(group)))
		if b == nil {
			return nil
		}
		var err error
		dumps, err = readBucket(b, dumps)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortDumps(dumps)
	return dumps, nil
}

// All returns the dumps of every group, oldest first
func (s *State) All() ([]*Dump, error) {
	var dumps []*Dump
	err := s.DB.View(func(tx *bbolt.Tx) error {
		return groupBuckets(tx, func(b *bbolt.Bucket) error {
			var err error
			dumps, err = readBucket(b, dumps)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	sortDumps(dumps)
	return dumps, nil
}

// Delete removes a dump by ID
func (s *State) Delete(id string) error {
	err := s.DB.Update(func(tx *bbolt.Tx) error {
		var found *bbolt.Bucket
		err := groupBuckets(tx, func(b *bbolt.Bucket) error {
			if b.Get([]byte(id)) == nil {
				return nil
			}
			found = b
			return errStop
		})
		if err != nil && !errors.Is(err, errStop) {
			return err
		}
		if found == nil {
			return ErrDumpNotFound{ID: id}
		}
		return found.Delete([]byte(id))
	})
	if err != nil {
		return err
	}
	log.Debug("Deleted dump: %s", id)
	return nil
}
