package domain

import "errors"

var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrNotFound = errors.New("record not found")
var ErrUnknownCollection = errors.New("unknown collection")
var ErrDuplicateIdentity = errors.New("identity already registered")
var ErrDuplicateRecord = errors.New("record already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidCredentialFormat = errors.New("invalid credential format")
var ErrInvalidStatus = errors.New("invalid contract status")
var ErrInvalidRating = errors.New("rating must be between 1 and 5")
