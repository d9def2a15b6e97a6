package utils

import (
	"io/fs"
	"path/filepath"
	"syscall"
)

// DirSize 统计 dirPath 下所有文件的总大小，dirPath 是单个文件时返回该文件的大小
// 基准测试用它统计输出文件的字节数
func DirSize(dirPath string) (int64, error) {
	var size int64
	err := filepath.Walk(dirPath, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// AvailableDiskSize 获取 dirPath 所在磁盘剩余可用空间的大小，dirPath 为空时使用工作目录
func AvailableDiskSize(dirPath string) (uint64, error) {
	if dirPath == "" {
		wd, err := syscall.Getwd()
		if err != nil {
			return 0, err
		}
		dirPath = wd
	}
	// 获取文件系统的状态信息
	var stat syscall.Statfs_t
	if err := syscall.Statfs(dirPath, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
