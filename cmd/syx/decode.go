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


package syx

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
Extract the messages of a .syx file
# go-ump bytes decode --file patch.syx

Skip timing clock bytes inside messages
# go-ump bytes decode --allow-realtime f0 7e f8 7f f7
`

func NewDecodeCommand(cfg *config.Config) *cobra.Command {
	var file, name string
	var remote, store, allowRealTime bool
	cmd := &cobra.Command{
		Use:     "decode [hex bytes...]",
		Short:   "Extract the SysEx messages of a MIDI 1.0 byte stream",
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
				msgs, err := command.NewApiClient(cfg).DecodeBytes(&srv.DecodeRequest{Hex: data, Store: store, Name: name})
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
			if cmd.Flags().Changed(AllowRealTimeOptionName) {
				cfg.AccumulatorConfig.AllowRealTime = allowRealTime
			}
			msgs, err := umpcmd.NewCodec(cfg).DecodeBytes(data)
			if err != nil {
				return err
			}
			for _, payload := range msgs {
				umpcmd.PrintMessage(out, 0, payload)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "Read a binary byte stream from file, - for stdin")
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Decode through the API server")
	cmd.Flags().BoolVar(&store, StoreOptionName, false, "Store decoded messages as dumps")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Name of stored dumps")
	cmd.Flags().BoolVar(&allowRealTime, AllowRealTimeOptionName, false, "Skip real-time bytes inside messages")
	return cmd
}
