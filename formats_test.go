package chquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStreamableFormat(t *testing.T) {
	streamable := []string{
		FormatJSONEachRow,
		FormatJSONCompactEachRow,
		FormatCSV,
		FormatCSVWithNames,
		FormatTabSeparated,
		FormatTabSeparatedWithNamesAndTypes,
	}
	for _, f := range streamable {
		assert.True(t, IsStreamableFormat(f), f)
	}

	// JSON is a whole-response document and deliberately not streamable.
	assert.False(t, IsStreamableFormat(FormatJSON))
	assert.False(t, IsStreamableFormat(""))
	assert.False(t, IsStreamableFormat("Parquet"))
	assert.False(t, IsStreamableFormat("jsoneachrow"), "allowlist is case-sensitive")
}
