package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid username/password")
var ErrPasswordUnusable = errors.New("password cannot be hashed")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("account with e-mail already exists")
var ErrUsernameTaken = errors.New("username is taken")
var ErrBoardNotFound = errors.New("vision board not found")
var ErrVendorEntryNotFound = errors.New("vendor directory entry not found")
var ErrSessionNotFound = errors.New("session not found")

// ErrReferenceUpdateFailed signals that an aggregate document was written but
// the symmetric reference on its parent could not be updated. The documents
// are inconsistent until the repair sweep runs.
var ErrReferenceUpdateFailed = errors.New("reference update failed")
