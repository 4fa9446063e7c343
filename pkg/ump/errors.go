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

package ump

import "fmt"

// ErrInvalidData is returned when words do not form the expected message.
// What is a fixed diagnostic; values with the same What compare equal.
type ErrInvalidData struct {
	What string
}

func (e ErrInvalidData) Error() string {
	return fmt.Sprintf("invalid data: %s", e.What)
}

// Is matches another ErrInvalidData with the same diagnostic. A target
// with an empty diagnostic matches any ErrInvalidData.
func (e ErrInvalidData) Is(target error) bool {
	t, ok := target.(ErrInvalidData)
	if !ok {
		return false
	}
	return t.What == "" || t.What == e.What
}

var (
	ErrSliceTooShort = ErrInvalidData{What: "slice too short"}
	ErrIncorrectType = ErrInvalidData{What: "incorrect message type"}
)
