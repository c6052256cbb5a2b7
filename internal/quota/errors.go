package quota

import "errors"

var ErrQuotaExceeded = errors.New("daily model quota exceeded")
