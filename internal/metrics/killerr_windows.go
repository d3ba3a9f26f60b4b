//go:build windows

package metrics

import (
	"errors"

	"golang.org/x/sys/windows"
)

func isNoSuchProcess(err error) bool {
	return errors.Is(err, windows.ERROR_INVALID_PARAMETER)
}

func isPermissionDenied(err error) bool {
	return errors.Is(err, windows.ERROR_ACCESS_DENIED)
}
