package index

import (
	"bytes"
	"sync"

	"github.com/google/btree"
)

// BTree 索引，主要封装了 google 的 btree kv
// https://github.com/google/btree
type BTree struct {
	tree *btree.BTree
	lock *sync.RWMutex
}

// NewBTree 初始化 BTree 索引结构
func NewBTree() *BTree {
	return &BTree{
		tree: btree.New(32),
		lock: new(sync.RWMutex),
	}
}

func (bt *BTree) Put(key []byte, s Stream) Stream {
	it := &Item{key: key, stream: s}
	bt.lock.Lock()
	oldItem := bt.tree.ReplaceOrInsert(it)
	bt.lock.Unlock()
	if oldItem == nil {
		return nil
	}
	return oldItem.(*Item).stream
}

func (bt *BTree) Get(key []byte) Stream {
	it := &Item{key: key}
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	btreeItem := bt.tree.Get(it)
	if btreeItem == nil {
		return nil
	}
	return btreeItem.(*Item).stream
}

func (bt *BTree) Delete(key []byte) (Stream, bool) {
	it := &Item{key: key}
	bt.lock.Lock()
	oldItem := bt.tree.Delete(it)
	bt.lock.Unlock()
	if oldItem == nil {
		return nil, false
	}
	return oldItem.(*Item).stream, true
}

func (bt *BTree) Size() int {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	return bt.tree.Len()
}

func (bt *BTree) Iterator(prefix []byte, reverse bool) Iterator {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	return newBTreeIterator(bt.tree, prefix, reverse)
}

func newBTreeIterator(tree *btree.BTree, prefix []byte, reverse bool) *sliceIterator {
	var values []*Item

	// 前缀范围内的 key 在 btree 中是连续的
	collect := func(it btree.Item) bool {
		item := it.(*Item)
		if !bytes.HasPrefix(item.key, prefix) {
			return false
		}
		values = append(values, item)
		return true
	}
	tree.AscendGreaterOrEqual(&Item{key: prefix}, collect)

	if reverse {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}
	return &sliceIterator{
		currIndex: 0,
		reverse:   reverse,
		values:    values,
	}
}
