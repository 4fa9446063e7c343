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

// ErrBufferOverflow is returned when a write or a required grow exceeds
// the capacity of a buffer
type ErrBufferOverflow struct {
	Need int
	Have int
}

func (e ErrBufferOverflow) Error() string {
	if e.Need == 0 && e.Have == 0 {
		return "buffer overflow"
	}
	return fmt.Sprintf("buffer overflow: need %d units, capacity %d", e.Need, e.Have)
}

// Is reports any ErrBufferOverflow as a match so that callers can compare
// against the zero value regardless of the sizes carried
func (e ErrBufferOverflow) Is(target error) bool {
	_, ok := target.(ErrBufferOverflow)
	return ok
}
