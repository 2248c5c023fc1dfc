package roster

import "github.com/cockroachdb/errors"

// Error kinds of the migration pipeline. Call sites wrap or mark these so
// errors.Is matches the kind while the message keeps the detail.
var (
	ErrNotFound  = errors.New("not found")
	ErrParse     = errors.New("parse error")
	ErrIntegrity = errors.New("integrity violation")
)
