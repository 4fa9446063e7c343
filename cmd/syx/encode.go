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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	umpcmd "jinr.ru/greenlab/go-ump/pkg/cmd"
	"jinr.ru/greenlab/go-ump/pkg/command"
	"jinr.ru/greenlab/go-ump/pkg/config"
)

func NewEncodeCommand(cfg *config.Config) *cobra.Command {
	var file, output string
	var remote bool
	cmd := &cobra.Command{
		Use:   "encode [hex payload...]",
		Short: "Frame a 7-bit payload with F0 and F7",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := umpcmd.ReadInput(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			var data []byte
			if remote {
				data, err = command.NewApiClient(cfg).EncodeBytes(payload)
			} else {
				data, err = umpcmd.NewCodec(cfg).EncodeBytes(payload)
			}
			if err != nil {
				return err
			}
			if output != "" {
				return os.WriteFile(output, data, 0644)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "% x\n", data)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "Read the payload from file, - for stdin")
	cmd.Flags().StringVar(&output, OutputOptionName, "", "Write the framed bytes to file instead of printing them")
	cmd.Flags().BoolVar(&remote, RemoteOptionName, false, "Encode through the API server")
	return cmd
}
