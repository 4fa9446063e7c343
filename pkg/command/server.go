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


package command

import (
	"context"

	"jinr.ru/greenlab/go-ump/pkg/config"
	"jinr.ru/greenlab/go-ump/pkg/log"
	"jinr.ru/greenlab/go-ump/pkg/srv"
	"jinr.ru/greenlab/go-ump/pkg/store"
)

// StartApiServer serves the API until ctx is done. An empty store path
// disables the dump routes.
func StartApiServer(ctx context.Context, cfg *config.Config) error {
	var state *store.State
	if cfg.StoreConfig.DBPath != "" {
		var err error
		state, err = store.NewState(cfg.StoreConfig.DBPath)
		if err != nil {
			return err
		}
		defer state.Close()
	} else {
		log.Warning("Dump store is disabled")
	}

	s, err := srv.NewApiServer(ctx, cfg, state)
	if err != nil {
		return err
	}
	return s.Run()
}
