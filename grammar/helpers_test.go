package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coquito/internal/source"
)

func mustRead(t *testing.T, path string) string {
	t.Helper()
	buf, err := source.Load(path)
	require.NoError(t, err)
	return buf.Text
}
