package index

import (
	"bytes"
	"sort"
	"sync"

	goart "github.com/plar/go-adaptive-radix-tree"
)

// AdaptiveRadixTree 自适应基数树索引
// 主要封装了 https://github.com/plar/go-adaptive-radix-tree 库
// 文件名共享大量前缀（同一目录），按前缀查找时比 btree 更省内存
type AdaptiveRadixTree struct {
	tree goart.Tree
	lock *sync.RWMutex
}

// NewART 初始化自适应基数树索引
func NewART() *AdaptiveRadixTree {
	return &AdaptiveRadixTree{
		tree: goart.New(),
		lock: new(sync.RWMutex),
	}
}

func (art *AdaptiveRadixTree) Put(key []byte, s Stream) Stream {
	art.lock.Lock()
	oldValue, _ := art.tree.Insert(key, s)
	art.lock.Unlock()
	if oldValue == nil {
		return nil
	}
	return oldValue.(Stream)
}

func (art *AdaptiveRadixTree) Get(key []byte) Stream {
	art.lock.RLock()
	defer art.lock.RUnlock()
	value, found := art.tree.Search(key)
	if !found {
		return nil
	}
	return value.(Stream)
}

func (art *AdaptiveRadixTree) Delete(key []byte) (Stream, bool) {
	art.lock.Lock()
	oldValue, deleted := art.tree.Delete(key)
	art.lock.Unlock()
	if oldValue == nil {
		return nil, false
	}
	return oldValue.(Stream), deleted
}

func (art *AdaptiveRadixTree) Size() int {
	art.lock.RLock()
	size := art.tree.Size()
	art.lock.RUnlock()
	return size
}

func (art *AdaptiveRadixTree) Iterator(prefix []byte, reverse bool) Iterator {
	art.lock.RLock()
	defer art.lock.RUnlock()
	return newARTIterator(art.tree, prefix, reverse)
}

func newARTIterator(tree goart.Tree, prefix []byte, reverse bool) *sliceIterator {
	var values []*Item
	saveValues := func(node goart.Node) bool {
		// ForEachPrefix 也会回调内部节点，只收集匹配前缀的叶子
		if node.Kind() != goart.Leaf || !bytes.HasPrefix(node.Key(), prefix) {
			return true
		}
		values = append(values, &Item{
			key:    node.Key(),
			stream: node.Value().(Stream),
		})
		return true
	}
	if len(prefix) == 0 {
		tree.ForEach(saveValues, goart.TraverseLeaf)
	} else {
		tree.ForEachPrefix(prefix, saveValues)
	}

	sort.Slice(values, func(i, j int) bool {
		cmp := bytes.Compare(values[i].key, values[j].key)
		if reverse {
			return cmp > 0
		}
		return cmp < 0
	})
	return &sliceIterator{
		currIndex: 0,
		reverse:   reverse,
		values:    values,
	}
}
