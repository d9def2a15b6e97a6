package stream

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/gofrs/flock"

	"cfile-go/fio"
)

// File 带缓冲的文件流，相当于 C 中的 FILE*
// 一个 *File 同一时间只应被一个所有者持有，本身不做并发控制
type File struct {
	dev      fio.IOManager // 底层设备
	name     string        // 文件路径
	mode     openMode      // 打开模式
	options  Options       // 配置项
	registry *Registry     // 登记表，为 nil 时不登记
	id       uint64        // 登记表中的流 id
	temp     bool          // 临时文件，关闭时删除

	buf     []byte     // 缓冲区，读写共用
	bufMode BufferMode // 缓冲方式
	short   [1]byte    // 无缓冲时读取使用的单字节缓冲区
	rpos    int        // 读窗口 buf[rpos:rend]
	rend    int
	wend    int   // 待写入的数据 buf[:wend]
	off     int64 // 读状态下为读窗口末尾对应的设备偏移，写状态下为 buf[0] 对应的设备偏移

	ungot    []byte // 回退栈，栈顶在末尾
	lastRune [utf8.UTFMax]byte
	lastN    int // 最近一次 ReadRune 读取的字节数，UnreadRune 使用

	eof    bool  // 文件结束标志
	err    error // 错误标志
	closed bool

	lock *flock.Flock // 咨询锁，第一次加锁时创建
}

// Open 以 fopen 风格的模式打开文件，使用默认配置项
func Open(name, mode string) (*File, error) {
	return OpenWithOptions(name, mode, DefaultOptions)
}

// OpenWithOptions 打开文件并关联一个新的流
func OpenWithOptions(name, mode string, options Options) (*File, error) {
	if err := CheckOptions(options); err != nil {
		return nil, err
	}
	m, err := parseMode(mode)
	if err != nil {
		return nil, err
	}
	dev, err := fio.NewIOManager(name, m.flag, options.Perm, m.ioType)
	if err != nil {
		return nil, err
	}
	f := newFile(dev, name, m, options)
	if err := f.initOffset(); err != nil {
		_ = dev.Close()
		return nil, err
	}
	f.register(registryOf(options))
	return f, nil
}

// Fdopen 将已经打开的 *os.File 关联到一个新的流，流关闭时 fd 也会被关闭
func Fdopen(fd *os.File, mode string) (*File, error) {
	return fdopen(fd, mode, DefaultOptions, registryOf(DefaultOptions))
}

func fdopen(fd *os.File, mode string, options Options, registry *Registry) (*File, error) {
	if err := CheckOptions(options); err != nil {
		return nil, err
	}
	m, err := parseMode(mode)
	if err != nil {
		return nil, err
	}
	f := newFile(fio.NewFileIOFromFile(fd, m.append), fd.Name(), m, options)
	// 从 fd 当前的偏移处开始，不支持定位的设备从 0 开始
	if off, err := fd.Seek(0, io.SeekCurrent); err == nil {
		f.off = off
	}
	f.register(registry)
	return f, nil
}

// Tmpfile 创建一个以 "w+" 模式打开的临时文件，关闭时删除
func Tmpfile() (*File, error) {
	fd, err := os.CreateTemp("", "cfile-go-*.tmp")
	if err != nil {
		return nil, err
	}
	f, err := fdopen(fd, "w+", DefaultOptions, registryOf(DefaultOptions))
	if err != nil {
		_ = fd.Close()
		_ = os.Remove(fd.Name())
		return nil, err
	}
	f.temp = true
	return f, nil
}

// Reopen 复用流 f 打开另一个文件，或者在 name 为空时以新的模式重新打开同一个文件
// 原来的文件总是会被关闭（关闭时的错误被忽略）；失败时 f 处于关闭状态，不可再使用
func Reopen(name, mode string, f *File) (*File, error) {
	if f == nil || f.closed {
		return nil, ErrClosed
	}
	path := name
	if path == "" {
		path = f.name
	}

	registry := f.registry
	if err := f.close(); err != nil {
		f.logger().Warn("reopen: close previous file failed", "name", f.name, "error", err)
	}
	fail := func(err error) (*File, error) {
		if f.temp {
			_ = os.Remove(f.name)
			f.temp = false
		}
		return nil, err
	}
	if path == "" {
		return fail(ErrNoPath)
	}
	if f.temp && path != f.name {
		_ = os.Remove(f.name)
		f.temp = false
	}

	m, err := parseMode(mode)
	if err != nil {
		return fail(err)
	}
	dev, err := fio.NewIOManager(path, m.flag, f.options.Perm, m.ioType)
	if err != nil {
		return fail(err)
	}

	// 复用同一个 File，保留缓冲区设置，其余状态重置
	f.dev, f.name, f.mode = dev, path, m
	f.rpos, f.rend, f.wend, f.off = 0, 0, 0, 0
	f.ungot, f.lastN = nil, 0
	f.eof, f.err, f.closed = false, nil, false
	if err := f.initOffset(); err != nil {
		_ = dev.Close()
		f.closed = true
		return fail(err)
	}
	f.register(registry)
	return f, nil
}

func newFile(dev fio.IOManager, name string, m openMode, options Options) *File {
	f := &File{
		dev:     dev,
		name:    name,
		mode:    m,
		options: options,
		bufMode: options.BufferMode,
	}
	if options.BufferMode == Unbuffered {
		f.buf = f.short[:]
	} else {
		f.buf = make([]byte, options.BufferSize)
	}
	return f
}

// initOffset 只写的追加流从文件末尾开始，其余从 0 开始
func (f *File) initOffset() error {
	if f.mode.append && !f.mode.readable {
		size, err := f.dev.Size()
		if err != nil {
			return err
		}
		f.off = size
	}
	return nil
}

func (f *File) register(registry *Registry) {
	f.registry = registry
	if registry != nil {
		registry.add(f)
	}
}

func (f *File) logger() *slog.Logger {
	if f.options.Logger != nil {
		return f.options.Logger
	}
	return slog.Default()
}

// Name 文件路径
func (f *File) Name() string {
	return f.name
}

// Close 刷新并关闭流，之后不能再使用 f
func (f *File) Close() error {
	if f.closed {
		return ErrClosed
	}
	err := f.close()
	if f.temp {
		if rmErr := os.Remove(f.name); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

// close 刷新缓冲区，释放锁，关闭设备，并从登记表中移除
func (f *File) close() error {
	err := f.flushWrite()
	if f.lock != nil {
		if unlockErr := f.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
		f.lock = nil
	}
	if closeErr := f.dev.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if f.registry != nil {
		f.registry.remove(f)
		f.registry = nil
	}
	f.closed = true
	f.rpos, f.rend, f.wend = 0, 0, 0
	f.ungot = nil
	return err
}

// Sync 刷新缓冲区并将数据持久化到磁盘
func (f *File) Sync() error {
	if err := f.Flush(); err != nil {
		return err
	}
	return f.dev.Sync()
}

// EOF 是否设置了文件结束标志
func (f *File) EOF() bool {
	return f.eof
}

// Err 返回错误标志，没有错误时为 nil
func (f *File) Err() error {
	return f.err
}

// ClearErr 清除文件结束标志和错误标志
func (f *File) ClearErr() {
	f.eof = false
	f.err = nil
}

// setErr 设置错误标志，io.EOF 只设置文件结束标志
func (f *File) setErr(err error) error {
	if errors.Is(err, io.EOF) {
		f.eof = true
		return err
	}
	f.err = err
	return err
}

// usable 流是否可以进行读写
func (f *File) usable(forWrite bool) error {
	if f.closed {
		return f.setErr(ErrClosed)
	}
	if forWrite && !f.mode.writable {
		return f.setErr(ErrNotWritable)
	}
	if !forWrite && !f.mode.readable {
		return f.setErr(ErrNotReadable)
	}
	return nil
}
