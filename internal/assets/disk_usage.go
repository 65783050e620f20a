//go:build unix

package assets

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DiskUsage describes capacity of the volume backing the asset root.
type DiskUsage struct {
	TotalBytes     int64
	UsedBytes      int64
	AvailableBytes int64
}

// DiskUsage reports total, used, and available bytes on the asset root volume.
func (s *Store) DiskUsage() (DiskUsage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(s.root, &stat); err != nil {
		return DiskUsage{}, fmt.Errorf("statfs %s: %w", s.root, err)
	}

	total := int64(stat.Blocks) * int64(stat.Bsize)
	available := int64(stat.Bavail) * int64(stat.Bsize)
	return DiskUsage{
		TotalBytes:     total,
		UsedBytes:      total - available,
		AvailableBytes: available,
	}, nil
}
