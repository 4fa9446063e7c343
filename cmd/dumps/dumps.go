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


package dumps

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	umpcmd "jinr.ru/greenlab/go-ump/pkg/cmd"
	"jinr.ru/greenlab/go-ump/pkg/command"
	"jinr.ru/greenlab/go-ump/pkg/config"
	"jinr.ru/greenlab/go-ump/pkg/metrics"
	"jinr.ru/greenlab/go-ump/pkg/srv"
)

const (
	GroupOptionName    = "group"
	EncodingOptionName = "encoding"
	NameOptionName     = "name"
	FileOptionName     = "file"
)

// NewCommand groups the commands managing dumps stored by the API server
func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dumps",
		Short: "Manage SysEx dumps stored by the API server",
	}
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewGetCommand(cfg))
	cmd.AddCommand(NewPutCommand(cfg))
	cmd.AddCommand(NewDeleteCommand(cfg))
	return cmd
}

func printTable(out io.Writer, dumps []srv.Dump) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGROUP\tENCODING\tSIZE\tNAME\tCREATED")
	for _, d := range dumps {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\t%s\n", d.ID, d.Group, d.Encoding, len(d.Payload), d.Name, d.Created)
	}
	return w.Flush()
}

func printDump(out io.Writer, d *srv.Dump) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	var group int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored dumps, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dumps, err := command.NewApiClient(cfg).ListDumps(group)
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), dumps)
		},
	}
	cmd.Flags().IntVar(&group, GroupOptionName, -1, "Only list dumps of this group")
	return cmd
}

func NewGetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := command.NewApiClient(cfg).GetDump(args[0])
			if err != nil {
				return err
			}
			return printDump(cmd.OutOrStdout(), d)
		},
	}
	return cmd
}

func NewPutCommand(cfg *config.Config) *cobra.Command {
	var file, name, encoding string
	var group uint8
	cmd := &cobra.Command{
		Use:   "put [hex payload...]",
		Short: "Store a payload as a dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := umpcmd.ReadInput(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			d, err := command.NewApiClient(cfg).PutDump(&srv.DumpRequest{
				Name:     name,
				Group:    group,
				Encoding: encoding,
				Payload:  payload,
			})
			if err != nil {
				return err
			}
			return printDump(cmd.OutOrStdout(), d)
		},
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "Read the payload from file, - for stdin")
	cmd.Flags().StringVar(&name, NameOptionName, "", "Dump name")
	cmd.Flags().StringVar(&encoding, EncodingOptionName, metrics.EncodingUMP,
		fmt.Sprintf("Wire encoding the payload came from: %s or %s", metrics.EncodingUMP, metrics.EncodingBytes))
	cmd.Flags().Uint8Var(&group, GroupOptionName, 0, "UMP group 0-15")
	return cmd
}

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.NewApiClient(cfg).DeleteDump(args[0])
		},
	}
	return cmd
}
