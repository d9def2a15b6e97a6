package stream

import (
	"github.com/gofrs/flock"
)

// Lock 对流对应的文件加排他的咨询锁，阻塞直到成功
// 锁在 Unlock 或者流关闭时释放
func (f *File) Lock() error {
	fl, err := f.flock()
	if err != nil {
		return err
	}
	return fl.Lock()
}

// TryLock 尝试加排他锁，文件已被其他持有者锁住时立即返回 false
func (f *File) TryLock() (bool, error) {
	fl, err := f.flock()
	if err != nil {
		return false, err
	}
	return fl.TryLock()
}

// Unlock 释放 Lock 或 TryLock 获得的锁，没有加锁时什么都不做
func (f *File) Unlock() error {
	if f.lock == nil {
		return nil
	}
	return f.lock.Unlock()
}

func (f *File) flock() (*flock.Flock, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if f.name == "" {
		return nil, ErrNoPath
	}
	if f.lock == nil {
		f.lock = flock.New(f.name)
	}
	return f.lock, nil
}
