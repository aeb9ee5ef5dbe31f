package pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
	"github.com/custodia-labs/pdfrank/internal/core/ports/driven"
)

// Ensure Validator implements the interface.
var _ driven.DocumentValidator = (*Validator)(nil)

// Validator checks PDF structure with pdfcpu before decoding.
type Validator struct {
	conf *model.Configuration
}

// NewValidator creates a validator in pdfcpu's relaxed mode.
func NewValidator() *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{conf: conf}
}

// Extensions returns the file extensions checked by this validator.
func (v *Validator) Extensions() []string {
	return []string{".pdf"}
}

// Validate parses the cross-reference table and object graph of the file at path.
// A missing file wraps domain.ErrInputNotFound.
func (v *Validator) Validate(_ context.Context, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", domain.ErrExtractionFailed, path, err)
	}
	defer func() { _ = f.Close() }()

	if err := api.Validate(f, v.conf); err != nil {
		return fmt.Errorf("%w: validate %s: %w", domain.ErrExtractionFailed, path, err)
	}
	return nil
}
