//go:build !windows

package debug

import "errors"

func residentSetSize() (uint64, error) {
	return 0, errors.New("working set size is only reported on windows")
}
