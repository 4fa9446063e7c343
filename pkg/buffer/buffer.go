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

// Buffer is the minimal read-only storage contract
type Buffer[U Unit] interface {
	// Units returns the current contents. Length is expressed in units.
	Units() []U
}

// Mutable storage lets the caller write its units in place
type Mutable[U Unit] interface {
	Buffer[U]
	UnitsMut() []U
}

// Resizer storage can change its length without reporting failure.
// Storages with a fixed capacity panic when asked to grow past it.
type Resizer[U Unit] interface {
	Mutable[U]
	Resize(n int)
}

// TryResizer storage can change its length within a bound and reports
// ErrBufferOverflow instead of growing past it. A failed call leaves
// the storage untouched.
type TryResizer[U Unit] interface {
	Mutable[U]
	TryResize(n int) error
}

// Default is satisfied by storage types whose zero value is an empty,
// ready to use buffer. B is the storage type, the constraint is met by *B.
type Default[U Unit, B any] interface {
	*B
	Resizer[U]
}

// NewDefault returns a default constructed storage of type B
func NewDefault[U Unit, B any, PB Default[U, B]]() PB {
	return PB(new(B))
}

// TryGrow sets the length of b to n using the strongest capability b has.
// TryResizer is preferred since it reports overflow without side effects.
// A storage without any resize capability succeeds only when it already
// holds n units.
func TryGrow[U Unit](b Mutable[U], n int) error {
	switch s := b.(type) {
	case TryResizer[U]:
		return s.TryResize(n)
	case Resizer[U]:
		s.Resize(n)
		return nil
	default:
		if len(b.Units()) < n {
			return ErrBufferOverflow{Need: n, Have: len(b.Units())}
		}
		return nil
	}
}

// Fill sets every unit of b to v
func Fill[U Unit](b Mutable[U], v U) {
	units := b.UnitsMut()
	for i := range units {
		units[i] = v
	}
}
