package audit

import "errors"

// ErrEventValidation marks events rejected before storage, such as ones
// missing an action.
var ErrEventValidation = errors.New("audit event rejected")
