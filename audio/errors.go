package audio

import "errors"

var ErrInvalidSound = errors.New("invalid sound")
