package models

import "errors"

// ErrRecordNotFound is returned by repositories when the requested record does not exist.
var ErrRecordNotFound = errors.New("record not found")
