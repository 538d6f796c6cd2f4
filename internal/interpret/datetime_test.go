// Copyright 2026 The TaskEase Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interpret

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeExtractor_TomorrowWithTime(t *testing.T) {
	e := NewDateTimeExtractor()
	now := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

	ext, ok := e.Extract("dentist tomorrow at 5pm", now)
	require.True(t, ok)
	assert.True(t, ext.HasDate)
	assert.Equal(t, "2026-03-15", ext.Date)
	assert.True(t, ext.HasTime)
	assert.Equal(t, "17:00", ext.Time)
}

func TestDateTimeExtractor_DateOnly(t *testing.T) {
	e := NewDateTimeExtractor()
	now := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

	ext, ok := e.Extract("water the plants tomorrow", now)
	require.True(t, ok)
	assert.True(t, ext.HasDate)
	assert.Equal(t, "2026-03-15", ext.Date)
	assert.False(t, ext.HasTime)
	assert.Empty(t, ext.Time)
}

func TestDateTimeExtractor_NoExpression(t *testing.T) {
	e := NewDateTimeExtractor()
	now := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

	for _, text := range []string{"buy milk", "", "call mom sometime"} {
		_, ok := e.Extract(text, now)
		assert.False(t, ok, "expected no extraction for %q", text)
	}
}
