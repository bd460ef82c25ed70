package main

import "errors"

// errSilent marks a failure that has already been reported to the user;
// main only sets the exit code.
var errSilent = errors.New("reported")

func isSilent(err error) bool {
	return errors.Is(err, errSilent)
}
