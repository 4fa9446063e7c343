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


package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-ump/pkg/command"
	"jinr.ru/greenlab/go-ump/pkg/config"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	DBOptionName      = "db"
	NoStoreOptionName = "no-store"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address, db string
	var port int
	var noStore bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.ApiConfig.Address = address
			}
			if port != 0 {
				cfg.ApiConfig.Port = port
			}
			if db != "" {
				cfg.StoreConfig.DBPath = db
			}
			if noStore {
				cfg.StoreConfig.DBPath = ""
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return command.StartApiServer(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Address to bind. E.g. "+config.DefaultApiAddress)
	cmd.Flags().IntVar(&port, PortOptionName, 0, "Port number to bind. E.g. 8000")
	cmd.Flags().StringVar(&db, DBOptionName, "", "Dump store database path")
	cmd.Flags().BoolVar(&noStore, NoStoreOptionName, false, "Run without the dump store")
	return cmd
}
