package index

import (
	"bytes"

	"github.com/google/btree"
)

// Stream 登记在索引中的流需要满足的最小接口
type Stream interface {
	Name() string
	Flush() error
	Close() error
}

// Indexer 打开流的登记索引接口，key 由流的文件名和流 id 组成
type Indexer interface {
	// Put 向索引中存储 key 对应的流，返回被替换的旧值
	Put(key []byte, s Stream) Stream

	// Get 根据 key 取出对应的流
	Get(key []byte) Stream

	// Delete 根据 key 删除对应的流
	Delete(key []byte) (Stream, bool)

	// Size 索引中的数据量
	Size() int

	// Iterator 索引迭代器，只遍历以 prefix 为前缀的 key，prefix 为空时遍历全部
	Iterator(prefix []byte, reverse bool) Iterator
}

type IndexerType = int8

const (
	// BTreeIndex BTree 索引
	BTreeIndex IndexerType = iota + 1

	// ARTIndex 自适应基数树索引
	ARTIndex
)

// NewIndexer 根据类型初始化索引
func NewIndexer(typ IndexerType) Indexer {
	switch typ {
	case BTreeIndex:
		return NewBTree()
	case ARTIndex:
		return NewART()
	default:
		panic("unsupported index type")
	}
}

// Item 实现 BTree 的 Item 接口
type Item struct {
	key    []byte
	stream Stream
}

func (ai *Item) Less(bi btree.Item) bool {
	return bytes.Compare(ai.key, bi.(*Item).key) == -1
}

// Iterator 通用索引迭代器
type Iterator interface {
	// Rewind 重新回到迭代器的起点，即第一个数据
	Rewind()

	// Seek 根据传入的 key 查找到第一个大于（或小于）等于的目标 key，从这个 key 开始遍历
	Seek(key []byte)

	// Next 跳转到下一个 key
	Next()

	// Valid 是否有效，即是否已经遍历完了所有的 key，用于退出遍历
	Valid() bool

	// Key 当前遍历位置的 Key 数据
	Key() []byte

	// Value 当前遍历位置的流
	Value() Stream

	// Close 关闭迭代器，释放相应资源
	Close()
}

// sliceIterator 基于快照的迭代器，btree 和 art 都把数据拷贝到数组中再遍历
// 遍历期间不持有索引的锁，回调里可以安全地关闭流
type sliceIterator struct {
	currIndex int     // 当前遍历的下标位置
	reverse   bool    // 是否是反向遍历
	values    []*Item // key + 流
}

func (si *sliceIterator) Rewind() {
	si.currIndex = 0
}

func (si *sliceIterator) Seek(key []byte) {
	// values 已按遍历方向排好序，二分找到第一个满足条件的位置
	lo, hi := 0, len(si.values)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		cmp := bytes.Compare(si.values[mid].key, key)
		if (!si.reverse && cmp < 0) || (si.reverse && cmp > 0) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	si.currIndex = lo
}

func (si *sliceIterator) Next() {
	si.currIndex++
}

func (si *sliceIterator) Valid() bool {
	return si.currIndex < len(si.values)
}

func (si *sliceIterator) Key() []byte {
	return si.values[si.currIndex].key
}

func (si *sliceIterator) Value() Stream {
	return si.values[si.currIndex].stream
}

func (si *sliceIterator) Close() {
	si.values = nil
}
