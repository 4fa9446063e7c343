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

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, WarningLevel, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), HelpLevels)
}

func TestLevelFiltering(t *testing.T) {
	var out bytes.Buffer
	Init(&out, "warning")
	defer Init(&bytes.Buffer{}, "info")

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warning("shown %d", 3)
	Error("shown %d", 4)

	s := out.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, LogPrefix)
	assert.Contains(t, s, WarningPrefix+"shown 3")
	assert.Contains(t, s, ErrorPrefix+"shown 4")
	assert.True(t, Enabled(WarningLevel))
	assert.False(t, Enabled(DebugLevel))
}

func TestInitPanicsOnWrongLevel(t *testing.T) {
	assert.Panics(t, func() { Init(&bytes.Buffer{}, "loud") })
}

func TestWriter(t *testing.T) {
	var out bytes.Buffer
	Init(&out, "info")
	defer Init(&bytes.Buffer{}, "info")
	assert.Same(t, &out, Writer())
}
