package fio

import "errors"

// DataFilePerm 新建文件默认权限 0644
// 八进制数字，所有者有读写权限，所在组和其他用户仅有读权限
const DataFilePerm = 0644

var (
	ErrReadOnly          = errors.New("the device is read only")
	ErrUnsupportedIOType = errors.New("unsupported io type")
)

type FileIOType = byte

const (
	// StandardFIO 标准文件 IO
	StandardFIO FileIOType = iota

	// MemoryMap 内存文件映射，只读
	MemoryMap
)

// IOManager 一个 IO 管理的抽象接口，将各种 IO 接口封装在一起，支持不同的文件 IO 实现
// 流（stream.File）在它之上做缓冲，自己维护读写位置
type IOManager interface {
	// Read 从文件指定位置读取数据
	Read([]byte, int64) (int, error)

	// Write 写入数据到文件指定位置，追加模式下忽略位置，总是写到文件末尾
	Write([]byte, int64) (int, error)

	// Sync 持久化数据
	Sync() error

	// Close 关闭文件
	Close() error

	// Size 获取文件大小
	Size() (int64, error)
}

// NewIOManager 初始化 IOManager，目前支持标准 FileIO 和 MMap
func NewIOManager(fileName string, flag int, perm uint32, ioType FileIOType) (IOManager, error) {
	switch ioType {
	case StandardFIO:
		return NewFileIOManager(fileName, flag, perm)
	case MemoryMap:
		return NewMMapIOManager(fileName)
	default:
		return nil, ErrUnsupportedIOType
	}
}
