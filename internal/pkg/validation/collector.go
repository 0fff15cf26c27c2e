package validation

import (
	"strings"

	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

// MessageSeparator joins collected messages into the single reported message
const MessageSeparator = ", "

// Collector accumulates field failures in check order
type Collector struct {
	messages []string
}

// New returns an empty collector
func New() *Collector {
	return &Collector{}
}

// Check records message when ok is false
func (c *Collector) Check(ok bool, message string) *Collector {
	if !ok {
		c.messages = append(c.messages, message)
	}
	return c
}

// Required records message when value is empty
func (c *Collector) Required(value, message string) *Collector {
	return c.Check(value != "", message)
}

// String records message when the string validation fails
func (c *Collector) String(v *StringValidation, message string) *Collector {
	return c.Check(v.Validate(), message)
}

// Err returns nil when nothing failed, otherwise a validation error whose
// message is every failure joined in order.
func (c *Collector) Err() error {
	if len(c.messages) == 0 {
		return nil
	}
	return apperrors.NewValidationError(strings.Join(c.messages, MessageSeparator))
}
