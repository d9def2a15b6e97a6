package cfile_go

import (
	"log/slog"
	"runtime"

	"cfile-go/stream"
)

const (
	// EOF 读取字符时表示“不是字符”的哨兵值
	EOF = stream.EOF

	// BufSize SetBuf 要求的缓冲区长度
	BufSize = stream.BufSize
)

// noCopy 嵌入之后 go vet 的 copylocks 检查会拒绝复制 Handle
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle 独占一个文件流，所有权只能通过 Move、Assign 和 Release 转移，不能复制
// 零值是一个未关联任何流的 Handle，可以直接使用
// Handle 本身不做并发控制
type Handle struct {
	noCopy noCopy

	f       *stream.File // 持有的流，为 nil 表示未关联
	options Options      // 配置项，Open 时使用
}

// New 创建一个未关联的 Handle
func New() *Handle {
	h, _ := NewWithOptions(DefaultOptions)
	return h
}

// NewWithOptions 根据配置项创建一个未关联的 Handle
func NewWithOptions(options Options) (*Handle, error) {
	if err := checkOptions(options); err != nil {
		return nil, err
	}
	return newHandle(nil, options), nil
}

// Adopt 接管一个已经打开的流
// 调用方需要保证 f 没有被其他所有者持有，之后也不能再直接关闭 f
func Adopt(f *stream.File) *Handle {
	return newHandle(f, DefaultOptions)
}

// Open 以 fopen 风格的模式打开文件
// 打开失败时返回未关联的 Handle，需要通过 Linked 判断
func Open(name, mode string) *Handle {
	return OpenWithOptions(name, mode, DefaultOptions)
}

// OpenWithOptions 根据配置项打开文件，失败时返回未关联的 Handle
func OpenWithOptions(name, mode string, options Options) *Handle {
	h := newHandle(nil, options)
	if err := checkOptions(options); err != nil {
		h.logger().Debug("open handle failed", "name", name, "mode", mode, "error", err)
		return h
	}
	_ = h.Open(name, mode)
	return h
}

// Move 把 src 持有的流转移给一个新的 Handle，src 变为未关联，流不会被关闭
func Move(src *Handle) *Handle {
	h := newHandle(src.f, src.options)
	src.f = nil
	return h
}

func newHandle(f *stream.File, options Options) *Handle {
	h := &Handle{f: f, options: options}
	if options.LeakCheck {
		runtime.SetFinalizer(h, (*Handle).finalize)
	}
	return h
}

// finalize Handle 被回收时仍然持有流，说明调用方忘记关闭
func (h *Handle) finalize() {
	if h.f == nil {
		return
	}
	h.logger().Warn("handle garbage collected while linked, closing stream", "name", h.f.Name())
	if err := h.f.Close(); err != nil {
		h.logger().Warn("close leaked stream failed", "name", h.f.Name(), "error", err)
	}
	h.f = nil
}

func (h *Handle) logger() *slog.Logger {
	if h.options.Logger != nil {
		return h.options.Logger
	}
	return slog.Default()
}

// file 返回持有的流，未关联时 panic
func (h *Handle) file() *stream.File {
	if h.f == nil {
		panic(ErrUnlinked)
	}
	return h.f
}

// Assign 先关闭 h 当前持有的流，再接管 src 的流，src 变为未关联
// 返回关闭原来的流时的错误，此时 h 仍然会接管 src 的流
func (h *Handle) Assign(src *Handle) error {
	if h == src {
		return nil
	}
	err := h.Close()
	h.f, src.f = src.f, nil
	return err
}

// Get 返回持有的流，未关联时返回 nil
// 使用返回值期间 h 必须保持可达（必要时使用 runtime.KeepAlive），否则开启 LeakCheck 时流可能被回收关闭
func (h *Handle) Get() *stream.File {
	return h.f
}

// Linked 是否关联了流
func (h *Handle) Linked() bool {
	return h.f != nil
}

// Release 把流交给调用方并变为未关联，流不会被关闭，之后由调用方负责关闭
func (h *Handle) Release() *stream.File {
	f := h.f
	h.f = nil
	return f
}

// Open 关闭当前持有的流，然后打开新的文件
// 失败时 h 变为未关联，返回打开文件的错误
func (h *Handle) Open(name, mode string) error {
	if err := h.Close(); err != nil {
		h.logger().Warn("close previous stream failed", "error", err)
	}
	f, err := stream.OpenWithOptions(name, mode, h.options.streamOptions())
	if err != nil {
		h.logger().Debug("open stream failed", "name", name, "mode", mode, "error", err)
		return err
	}
	h.f = f
	return nil
}

// Reopen 复用持有的流打开另一个文件，name 为空时以新的模式重新打开同一个文件
// 失败时流已经被关闭，h 变为未关联
func (h *Handle) Reopen(name, mode string) error {
	if _, err := stream.Reopen(name, mode, h.file()); err != nil {
		h.f = nil
		return err
	}
	return nil
}

// Chmode 以新的模式重新打开同一个文件
func (h *Handle) Chmode(mode string) error {
	return h.Reopen("", mode)
}

// Close 刷新并关闭流，之后变为未关联；未关联时什么都不做
func (h *Handle) Close() error {
	if h.f == nil {
		return nil
	}
	err := h.f.Close()
	h.f = nil
	return err
}

// Flush 将缓冲区中的数据写入文件
func (h *Handle) Flush() error {
	return h.file().Flush()
}

// Sync 刷新缓冲区并将数据持久化到磁盘
func (h *Handle) Sync() error {
	return h.file().Sync()
}

// SetBuf 使用调用方的缓冲区，长度在编译期固定为 BufSize；buf 为 nil 时变为无缓冲
func (h *Handle) SetBuf(buf *[BufSize]byte) {
	h.file().SetBuf(buf)
}

// SetVBuf 设置缓冲方式和缓冲区
func (h *Handle) SetVBuf(buf []byte, mode stream.BufferMode, size int) error {
	return h.file().SetVBuf(buf, mode, size)
}

func (h *Handle) GetPos() (stream.Pos, error) {
	return h.file().GetPos()
}

func (h *Handle) SetPos(pos stream.Pos) error {
	return h.file().SetPos(pos)
}

func (h *Handle) Tell() (int64, error) {
	return h.file().Tell()
}

func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	return h.file().Seek(offset, whence)
}

func (h *Handle) Rewind() {
	h.file().Rewind()
}

func (h *Handle) ClearErr() {
	h.file().ClearErr()
}

func (h *Handle) EOF() bool {
	return h.file().EOF()
}

// Err 返回流的错误标志，不为 nil 表示出过错
func (h *Handle) Err() error {
	return h.file().Err()
}

func (h *Handle) Getc() int {
	return h.file().Getc()
}

func (h *Handle) Ungetc(c int) int {
	return h.file().Ungetc(c)
}

// Peek 读取一个字符再放回去，流已经结束时返回 EOF
func (h *Handle) Peek() int {
	return h.file().Peek()
}

// Gets 读取一行，至多 len(buf)-1 个字节
func (h *Handle) Gets(buf []byte) []byte {
	return h.file().Gets(buf)
}

func (h *Handle) Read(p []byte) (int, error) {
	return h.file().Read(p)
}

func (h *Handle) Write(p []byte) (int, error) {
	return h.file().Write(p)
}

func (h *Handle) WriteString(s string) (int, error) {
	return h.file().WriteString(s)
}

func (h *Handle) ReadRune() (rune, int, error) {
	return h.file().ReadRune()
}

func (h *Handle) UnreadRune() error {
	return h.file().UnreadRune()
}

// ReadN 读取 count 个大小为 size 的元素，返回完整读取的元素个数
func (h *Handle) ReadN(p []byte, size, count int) int {
	return h.file().ReadN(p, size, count)
}

// WriteN 写入 count 个大小为 size 的元素，返回完整写入的元素个数
func (h *Handle) WriteN(p []byte, size, count int) int {
	return h.file().WriteN(p, size, count)
}

func (h *Handle) Putc(c int) int {
	return h.file().Putc(c)
}

func (h *Handle) Puts(s string) (int, error) {
	return h.file().Puts(s)
}

// Printf 格式化输出，参数和 format 是否匹配由调用方负责
func (h *Handle) Printf(format string, args ...any) (int, error) {
	return h.file().Printf(format, args...)
}

// Scanf 格式化输入，参数和 format 是否匹配由调用方负责
func (h *Handle) Scanf(format string, args ...any) (int, error) {
	return h.file().Scanf(format, args...)
}

// Lock 对文件加排他的咨询锁
func (h *Handle) Lock() error {
	return h.file().Lock()
}

func (h *Handle) TryLock() (bool, error) {
	return h.file().TryLock()
}

// Unlock 释放锁，未关联时什么都不做
func (h *Handle) Unlock() error {
	if h.f == nil {
		return nil
	}
	return h.f.Unlock()
}
