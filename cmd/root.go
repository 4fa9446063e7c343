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


package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-ump/cmd/completion"
	"jinr.ru/greenlab/go-ump/cmd/config"
	"jinr.ru/greenlab/go-ump/cmd/dumps"
	"jinr.ru/greenlab/go-ump/cmd/serve"
	"jinr.ru/greenlab/go-ump/cmd/sysex7"
	"jinr.ru/greenlab/go-ump/cmd/syx"
	pkgconfig "jinr.ru/greenlab/go-ump/pkg/config"
	"jinr.ru/greenlab/go-ump/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
	ConfigOptionName   = "config"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel, configPath string
	cfg := pkgconfig.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:          "go-ump",
		Short:        "Tool to work with MIDI System Exclusive messages over UMP and MIDI 1.0 byte streams",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := pkgconfig.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
				return err
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(sysex7.NewCommand(cfg))
	cmd.AddCommand(syx.NewCommand(cfg))
	cmd.AddCommand(dumps.NewCommand(cfg))
	cmd.AddCommand(serve.NewCommand(cfg))
	cmd.AddCommand(config.NewCommand(cfg))
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	cmd.PersistentFlags().StringVar(&configPath, ConfigOptionName, pkgconfig.DefaultConfigPath(), "Config file path")
	return cmd
}
