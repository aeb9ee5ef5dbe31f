package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

func TestReader_Read_Missing(t *testing.T) {
	_, err := NewReader().Read(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))

	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestReader_Read_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o600))

	_, err := NewReader().Read(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	t.Run("missing", func(t *testing.T) {
		err := v.Validate(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
		assert.ErrorIs(t, err, domain.ErrInputNotFound)
	})

	t.Run("corrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\ngarbage"), 0o600))

		err := v.Validate(context.Background(), path)
		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	})
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, NewReader().Extensions())
	assert.Equal(t, []string{".pdf"}, NewValidator().Extensions())
}
