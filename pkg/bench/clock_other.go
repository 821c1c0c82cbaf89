//go:build !amd64

package bench

import "errors"

func NewTSCClock() (Clock, error) {
	return nil, errors.New("the time stamp counter clock needs an amd64 processor")
}
