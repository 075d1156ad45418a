package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validation rule identifiers. Handlers map these to error codes on the
// wire, so they are stable strings rather than iota constants.
const (
	RuleMainAttributeRequired           = "MainAttributeRequired"
	RuleMainAttributeCoverageMissing    = "MainAttributeCoverageMissing"
	RuleInvalidVariantPricing           = "InvalidVariantPricing"
	RuleSimpleProductRequiresPriceStock = "SimpleProductRequiresPriceAndStock"
	RuleInvalidSimplePricing            = "InvalidSimplePricing"
)

// ValidationError reports a structural or business-rule violation in a
// candidate write. Recoverable by the caller correcting input.
type ValidationError struct {
	Rule    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Rule, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrNotFound signals that a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// DuplicateKeyError reports a uniqueness violation on write, naming the
// colliding field(s).
type DuplicateKeyError struct {
	Fields []string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate value for: " + strings.Join(e.Fields, ", ")
}

// AsDuplicateKeyError unwraps err into a *DuplicateKeyError if it is one.
func AsDuplicateKeyError(err error) (*DuplicateKeyError, bool) {
	var de *DuplicateKeyError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
