//go:build windows

package memaccess

import "golang.org/x/sys/windows"

func queryPageSize() int {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	if info.PageSize > 0 {
		return int(info.PageSize)
	}
	return 4096
}
