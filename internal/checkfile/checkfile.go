// Package checkfile decodes check files and reads them from a directory.
package checkfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"statuspage/internal/models"
)

// Suffix is required on every check file name
const Suffix = "-check.json"

// ErrInvalidPayload marks check files whose content cannot be used
var ErrInvalidPayload = errors.New("invalid check file")

var validate = validator.New()

// IsCheckFile reports whether name looks like a check file
func IsCheckFile(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// Decode reads a check file: a JSON array of results. One invalid result
// rejects the whole file.
func Decode(r io.Reader) ([]*models.Result, error) {
	var results []*models.Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	for i, result := range results {
		if result == nil {
			return nil, fmt.Errorf("%w: result %d is null", ErrInvalidPayload, i)
		}
		if err := validate.Struct(result); err != nil {
			return nil, fmt.Errorf("%w: result %d: %v", ErrInvalidPayload, i, err)
		}
		if result.Title == "" {
			result.Title = result.Endpoint
		}
	}

	return results, nil
}
