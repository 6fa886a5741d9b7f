// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vkcore/vk"
)

func TestLoadPipelineCacheMissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.cache")
	data, err := LoadPipelineCache(path)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSaveThenLoadPipelineCacheRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.cache")
	want := []byte("synthetic pipeline cache blob contents")

	require.NoError(t, SavePipelineCache(path, want))

	got, err := LoadPipelineCache(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMergeIntoNoSourcesIsNoop(t *testing.T) {
	require.NoError(t, MergeInto(vk.NewCommands(), vk.Device(1), vk.PipelineCache(1), nil))
}

func TestMergeIntoWithoutLoadedDriverFails(t *testing.T) {
	err := MergeInto(vk.NewCommands(), vk.Device(1), vk.PipelineCache(1), []vk.PipelineCache{vk.PipelineCache(2)})
	assert.Error(t, err)
}

func TestSavePipelineCacheEmptyBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.cache")
	require.NoError(t, SavePipelineCache(path, nil))

	got, err := LoadPipelineCache(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
