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


package sysex7

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-ump/pkg/config"
)

const (
	FileOptionName   = "file"
	RemoteOptionName = "remote"
	StoreOptionName  = "store"
	NameOptionName   = "name"
	GroupOptionName  = "group"
	OutputOptionName = "output"
)

// NewCommand groups the commands working on UMP SysEx7 fragments
func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysex7",
		Short: "Decode and encode SysEx7 fragments of a UMP stream",
	}
	cmd.AddCommand(NewDecodeCommand(cfg))
	cmd.AddCommand(NewEncodeCommand(cfg))
	return cmd
}
