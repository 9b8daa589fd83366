package usecase

import "errors"

// ErrNotFound means the provider answered successfully but carried no data.
var ErrNotFound = errors.New("resource not found")
