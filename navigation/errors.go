package navigation

import "errors"

// ErrInvalidParam reports a violated precondition: bad index, missing type entry, foreign owner
var ErrInvalidParam = errors.New("invalid parameter")
