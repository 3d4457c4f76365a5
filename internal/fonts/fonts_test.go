package fonts

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReturnsAllBundledFonts(t *testing.T) {
	assets := List()
	require.Len(t, assets, 4)

	names := make([]string, len(assets))
	for i, a := range assets {
		names[i] = a.Name
		data, err := base64.StdEncoding.DecodeString(a.Data)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
	assert.Equal(t, []string{"Go Regular", "Go Bold", "Go Italic", "Go Mono"}, names)
}
