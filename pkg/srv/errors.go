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

import "fmt"

// ErrStoreDisabled is returned by dump routes when the server runs without a store
type ErrStoreDisabled struct{}

func (e ErrStoreDisabled) Error() string {
	return "Dump store is disabled"
}

// ErrBadRequest wraps an invalid request body or parameter
type ErrBadRequest struct {
	What string
	Err  error
}

func (e ErrBadRequest) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Bad request: %s", e.What)
	}
	return fmt.Sprintf("Bad request: %s: %s", e.What, e.Err)
}

func (e ErrBadRequest) Unwrap() error {
	return e.Err
}
