package revocation

import "errors"

var (
	ErrInvalidEmployeeID       = errors.New("revocation: invalid employee id")
	ErrNoApprovedTermination   = errors.New("revocation: no approved termination for employee")
	ErrAlreadyRevoked          = errors.New("revocation: access already revoked")
	ErrRevocationNotFound      = errors.New("revocation: revocation not found")
	ErrEmployeeProfileNotFound = errors.New("revocation: employee profile not found")
	ErrDirectoryUnavailable    = errors.New("revocation: employee directory unavailable")
)
