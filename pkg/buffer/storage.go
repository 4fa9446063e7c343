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

package buffer

import "fmt"

// Vec is an owned, growable storage. The zero value is an empty buffer
// ready to use. A positive Limit bounds TryResize; Resize ignores it.
type Vec[U Unit] struct {
	data  []U
	Limit int
}

var (
	_ Resizer[uint32]    = &Vec[uint32]{}
	_ TryResizer[uint32] = &Vec[uint32]{}
)

// NewVec returns an empty owned buffer whose fallible growth is bounded by limit units.
// A zero limit means unbounded.
func NewVec[U Unit](limit int) *Vec[U] {
	return &Vec[U]{Limit: limit}
}

func (v *Vec[U]) Units() []U {
	return v.data
}

func (v *Vec[U]) UnitsMut() []U {
	return v.data
}

// Resize sets the length to n. New units are zero.
func (v *Vec[U]) Resize(n int) {
	if n < 0 {
		panic(fmt.Sprintf("buffer: negative length %d", n))
	}
	if n <= len(v.data) {
		v.data = v.data[:n]
		return
	}
	if n <= cap(v.data) {
		old := len(v.data)
		v.data = v.data[:n]
		clear(v.data[old:])
		return
	}
	grown := make([]U, n, growCap(cap(v.data), n))
	copy(grown, v.data)
	v.data = grown
}

// TryResize is Resize bounded by Limit
func (v *Vec[U]) TryResize(n int) error {
	if v.Limit > 0 && n > v.Limit {
		return ErrBufferOverflow{Need: n, Have: v.Limit}
	}
	v.Resize(n)
	return nil
}

func growCap(old, need int) int {
	c := old * 2
	if c < 8 {
		c = 8
	}
	for c < need {
		c *= 2
	}
	return c
}

// Slice borrows a region of caller memory. It never allocates: the
// length can move anywhere inside the region and growing past the end
// of the region fails.
type Slice[U Unit] struct {
	region []U
	n      int
}

var _ TryResizer[uint32] = &Slice[uint32]{}

// Borrow wraps region. The whole region is initially in use.
func Borrow[U Unit](region []U) *Slice[U] {
	return &Slice[U]{region: region, n: len(region)}
}

func (s *Slice[U]) Units() []U {
	return s.region[:s.n]
}

func (s *Slice[U]) UnitsMut() []U {
	return s.region[:s.n]
}

// Cap returns the size of the borrowed region
func (s *Slice[U]) Cap() int {
	return len(s.region)
}

func (s *Slice[U]) TryResize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("buffer: negative length %d", n))
	}
	if n > len(s.region) {
		return ErrBufferOverflow{Need: n, Have: len(s.region)}
	}
	if n > s.n {
		clear(s.region[s.n:n])
	}
	s.n = n
	return nil
}

// Fixed is an owned storage with a capacity chosen at construction.
// It starts empty.
type Fixed[U Unit] struct {
	data []U
}

var (
	_ Resizer[uint8]    = &Fixed[uint8]{}
	_ TryResizer[uint8] = &Fixed[uint8]{}
)

func NewFixed[U Unit](capacity int) *Fixed[U] {
	return &Fixed[U]{data: make([]U, 0, capacity)}
}

func (f *Fixed[U]) Units() []U {
	return f.data
}

func (f *Fixed[U]) UnitsMut() []U {
	return f.data
}

func (f *Fixed[U]) Cap() int {
	return cap(f.data)
}

// Resize panics when n exceeds the capacity
func (f *Fixed[U]) Resize(n int) {
	if err := f.TryResize(n); err != nil {
		panic(err)
	}
}

func (f *Fixed[U]) TryResize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("buffer: negative length %d", n))
	}
	if n > cap(f.data) {
		return ErrBufferOverflow{Need: n, Have: cap(f.data)}
	}
	old := len(f.data)
	f.data = f.data[:n]
	if n > old {
		clear(f.data[old:])
	}
	return nil
}
