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

package store

import "fmt"

type ErrDumpNotFound struct {
	ID string
}

func (e ErrDumpNotFound) Error() string {
	return fmt.Sprintf("Dump not found: %s", e.ID)
}

type ErrInvalidGroup struct {
	Group uint8
}

func (e ErrInvalidGroup) Error() string {
	return fmt.Sprintf("Invalid group %d. Must be 0-15", e.Group)
}

type ErrInvalidEncoding struct {
	Encoding string
}

func (e ErrInvalidEncoding) Error() string {
	return fmt.Sprintf("Invalid encoding %q. Must be one of: ump, bytes", e.Encoding)
}
