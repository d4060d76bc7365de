package club

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrBadRequest     = errors.New("bad request")
	ErrNoClub         = errors.New("no club selected")
	ErrShortNameTaken = errors.New("short name already taken")
)

func IsErrUnauthorized(err error) bool   { return errors.Is(err, ErrUnauthorized) }
func IsErrNotFound(err error) bool       { return errors.Is(err, ErrNotFound) }
func IsErrBadRequest(err error) bool     { return errors.Is(err, ErrBadRequest) }
func IsErrNoClub(err error) bool         { return errors.Is(err, ErrNoClub) }
func IsErrShortNameTaken(err error) bool { return errors.Is(err, ErrShortNameTaken) }
