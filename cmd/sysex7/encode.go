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
	"os"

	"github.com/spf13/cobra"

	umpcmd "jinr.ru/greenlab/go-ump/pkg/cmd"
	"jinr.ru/greenlab/go-ump/pkg/command"
	"jinr.ru/greenlab/go-ump/pkg/config"
)

const encodeExample = `
Split an identity request into fragments on group 1
# go-ump sysex7 encode --group 1 7e 7f 06 01

Write the fragments of a payload file as a binary UMP stream
# go-ump sysex7 encode --file patch.bin --output patch.ump
`

func NewEncodeCommand(cfg *config.Config) *cobra.Command {
	var file, output string
	var group uint8
	var remote bool
	cmd := &cobra.Command{
		Use:     "encode [hex payload...]",
		Short:   "Split a 7-bit payload into SysEx7 fragments",
		Example: encodeExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := umpcmd.ReadInput(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			var data []byte
			if remote {
				resp, err := command.NewApiClient(cfg).EncodeSysEx7(group, payload)
				if err != nil {
					return err
				}
				data = resp.Hex
			} else {
				data, err = umpcmd.NewCodec(cfg).EncodeUMP(group, payload)
				if err != nil {
					return err
				}
			}
			if output != "" {
				return os.WriteFile(output, data, 0644)
			}
			return umpcmd.PrintPackets(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "Read the payload from file, - for stdin")
	cmd.Flags().StringVar(&output, OutputOptionName, "", "Write a binary UMP stream to file instead of printing words")
	cmd.Flags().Uint8Var(&group, GroupOptionName, 0, "UMP group 0-15")
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Encode through the API server")
	return cmd
}
