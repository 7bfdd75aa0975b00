package codebuf

import "errors"

var errAlreadyFinalized = errors.New("codebuf: page already finalized")
