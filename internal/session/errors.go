package session

import "errors"

var errMalformed = errors.New("session record lacks id or email")
