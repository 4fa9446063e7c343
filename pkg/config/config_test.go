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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigDir, ConfigFile)
	cfg := NewDefaultConfig()
	cfg.SetPath(path)
	cfg.ApiConfig.Port = 9000
	cfg.AccumulatorConfig.AllowRealTime = true
	require.NoError(t, cfg.Persist(false))

	require.ErrorIs(t, cfg.Persist(false), ErrConfigFileExists{Path: path})
	require.NoError(t, cfg.Persist(true))

	loaded, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, loaded.ApiConfig.Port)
	assert.True(t, loaded.AccumulatorConfig.AllowRealTime)
	assert.Equal(t, DefaultParserMaxWords, loaded.ParserConfig.MaxWords)
	assert.Equal(t, "http://127.0.0.1:9000", loaded.ApiEndpoint())
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\nparser:\n  maxWords: 64\n"), 0644))

	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 64, cfg.ParserConfig.MaxWords)
	assert.Equal(t, DefaultApiPort, cfg.ApiConfig.Port)
	assert.Equal(t, DefaultAccumulatorMaxBytes, cfg.AccumulatorConfig.MaxBytes)
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent")
	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(c *Config){
		"log level":    func(c *Config) { c.LogLevel = "loud" },
		"port":         func(c *Config) { c.ApiConfig.Port = 70000 },
		"odd words":    func(c *Config) { c.ParserConfig.MaxWords = 3 },
		"tiny bytes":   func(c *Config) { c.AccumulatorConfig.MaxBytes = 1 },
		"negative max": func(c *Config) { c.AccumulatorConfig.MaxBytes = -1 },
	}
	require.NoError(t, NewDefaultConfig().Validate())
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}

	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  port: -1\n"), 0644))
	_, err := LoadOrDefault(path)
	require.Error(t, err)
}
