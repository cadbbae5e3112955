package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUriToPathStripsFileScheme(t *testing.T) {
	path, err := uriToPath("file:///home/user/contract.tz")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/contract.tz", path)
}

func TestUriToPathRejectsInvalidURI(t *testing.T) {
	_, err := uriToPath("file://%zz")
	assert.Error(t, err)
}

func TestNewHandlerStartsWithEmptyContent(t *testing.T) {
	h := NewHandler()
	assert.Empty(t, h.content)
}

func TestStoreRecordsDocumentText(t *testing.T) {
	h := NewHandler()
	h.store("file:///a.tz", "parameter unit; storage unit; code {};")
	assert.Equal(t, "parameter unit; storage unit; code {};", h.content["file:///a.tz"])
}
