//go:build !windows

package memaccess

import "golang.org/x/sys/unix"

func queryPageSize() int {
	if sz := unix.Getpagesize(); sz > 0 {
		return sz
	}
	return 4096
}
