package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsynth/go-ragsynth/llm"
	"github.com/ragsynth/go-ragsynth/prompthelper"
)

func TestNewContext(t *testing.T) {
	helper, err := prompthelper.NewPromptHelper(4096, 256, 200)
	require.NoError(t, err)

	sctx, err := NewContext(llm.NewMockPredictor(), helper)
	require.NoError(t, err)
	assert.Same(t, helper, sctx.PromptHelper)
}

func TestNewContextValidation(t *testing.T) {
	helper, err := prompthelper.NewPromptHelper(4096, 256, 200)
	require.NoError(t, err)

	_, err = NewContext(nil, helper)
	assert.Error(t, err)
	_, err = NewContext(llm.NewMockPredictor(), nil)
	assert.Error(t, err)
}

func TestFromPredictor(t *testing.T) {
	mock := llm.NewMockPredictor()
	mock.MaxInputSize = 2048

	sctx, err := FromPredictor(mock)
	require.NoError(t, err)
	assert.Equal(t, 2048, sctx.PromptHelper.MaxInputSize)
	assert.Equal(t, DefaultMaxChunkOverlap, sctx.PromptHelper.MaxChunkOverlap)
}
