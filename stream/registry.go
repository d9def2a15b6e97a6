package stream

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"cfile-go/index"
)

// Registry 打开流的登记表，用于一次性刷新或关闭所有的流
type Registry struct {
	index  index.Indexer
	nextID atomic.Uint64
}

// DefaultRegistry 默认的登记表，没有指定登记表的流都登记在这里
var DefaultRegistry = NewRegistry(index.BTreeIndex)

// NewRegistry 根据索引类型初始化登记表
func NewRegistry(typ index.IndexerType) *Registry {
	return &Registry{index: index.NewIndexer(typ)}
}

func registryOf(options Options) *Registry {
	if options.Registry != nil {
		return options.Registry
	}
	return DefaultRegistry
}

// registryKey 文件名 + @ + 16 位十六进制 id，同名文件的多个流按打开顺序排列
func registryKey(name string, id uint64) []byte {
	key := make([]byte, 0, len(name)+17)
	key = append(key, name...)
	key = append(key, '@')
	hex := strconv.FormatUint(id, 16)
	for i := len(hex); i < 16; i++ {
		key = append(key, '0')
	}
	return append(key, hex...)
}

func (r *Registry) add(f *File) {
	f.id = r.nextID.Add(1)
	r.index.Put(registryKey(f.name, f.id), f)
}

func (r *Registry) remove(f *File) {
	r.index.Delete(registryKey(f.name, f.id))
}

// Len 登记表中打开的流的数量
func (r *Registry) Len() int {
	return r.index.Size()
}

// Streams 返回文件名以 prefix 开头的所有打开的流，按文件名排序
func (r *Registry) Streams(prefix string) []*File {
	iter := r.index.Iterator([]byte(prefix), false)
	defer iter.Close()

	var files []*File
	for iter.Rewind(); iter.Valid(); iter.Next() {
		files = append(files, iter.Value().(*File))
	}
	return files
}

// FlushAll 刷新所有打开的流，返回所有刷新失败的错误
func (r *Registry) FlushAll() error {
	var errs []error
	for _, f := range r.Streams("") {
		if err := f.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", f.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// CloseAll 关闭所有打开的流，返回关闭的流的数量
// 关闭时的错误只记录日志，流仍然视为已关闭
func (r *Registry) CloseAll() int {
	var closed int
	for _, f := range r.Streams("") {
		if err := f.Close(); err != nil {
			f.logger().Warn("close stream failed", "name", f.Name(), "error", err)
		}
		closed++
	}
	return closed
}

// FlushAll 刷新默认登记表中所有打开的流
func FlushAll() error {
	return DefaultRegistry.FlushAll()
}

// CloseAll 关闭默认登记表中所有打开的流
func CloseAll() int {
	return DefaultRegistry.CloseAll()
}

// Streams 返回默认登记表中文件名以 prefix 开头的流
func Streams(prefix string) []*File {
	return DefaultRegistry.Streams(prefix)
}
