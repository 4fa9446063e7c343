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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	umpcmd "jinr.ru/greenlab/go-ump/pkg/cmd"
	"jinr.ru/greenlab/go-ump/pkg/command"
	"jinr.ru/greenlab/go-ump/pkg/config"
	"jinr.ru/greenlab/go-ump/pkg/srv"
)

const decodeExample = `
Reassemble a message split into two fragments
# go-ump sysex7 decode 31160102 03040506 31310700 00000000

Decode a binary UMP capture through the API server and store the result
# go-ump sysex7 decode --file capture.ump --remote --store --name patch
`

func NewDecodeCommand(cfg *config.Config) *cobra.Command {
	var file, name string
	var remote, store bool
	cmd := &cobra.Command{
		Use:     "decode [hex words...]",
		Short:   "Reassemble the SysEx7 messages of a big-endian UMP stream",
		Example: decodeExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if store && !remote {
				return errors.New("--store requires --remote")
			}
			data, err := umpcmd.ReadInput(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if remote {
				msgs, err := command.NewApiClient(cfg).DecodeSysEx7(&srv.DecodeRequest{Hex: data, Store: store, Name: name})
				if err != nil {
					return err
				}
				for _, m := range msgs {
					umpcmd.PrintMessage(out, m.Group, m.Payload)
					if m.DumpID != "" {
						fmt.Fprintf(out, "    dump: %s\n", m.DumpID)
					}
				}
				return nil
			}
			msgs, err := umpcmd.NewCodec(cfg).DecodeUMP(data)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				umpcmd.PrintMessage(out, m.Group, m.Payload)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "Read a binary UMP stream from file, - for stdin")
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Decode through the API server")
	cmd.Flags().BoolVar(&store, StoreOptionName, false, "Store decoded messages as dumps")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Name of stored dumps")
	return cmd
}
