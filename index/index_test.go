package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeStream 测试用的流
type fakeStream struct {
	name    string
	flushed int
	closed  bool
}

func (fs *fakeStream) Name() string { return fs.name }

func (fs *fakeStream) Flush() error {
	fs.flushed++
	return nil
}

func (fs *fakeStream) Close() error {
	fs.closed = true
	return nil
}

func indexers() map[string]Indexer {
	return map[string]Indexer{
		"btree": NewIndexer(BTreeIndex),
		"art":   NewIndexer(ARTIndex),
	}
}

func TestIndexer_Put_Get(t *testing.T) {
	for name, idx := range indexers() {
		t.Run(name, func(t *testing.T) {
			s1 := &fakeStream{name: "a.tmp"}
			s2 := &fakeStream{name: "b.tmp"}

			assert.Nil(t, idx.Put([]byte("a.tmp@1"), s1))
			assert.Nil(t, idx.Put([]byte("b.tmp@2"), s2))
			assert.Equal(t, 2, idx.Size())

			assert.Equal(t, s1, idx.Get([]byte("a.tmp@1")))
			assert.Equal(t, s2, idx.Get([]byte("b.tmp@2")))
			assert.Nil(t, idx.Get([]byte("c.tmp@3")))

			// 覆盖写返回旧值
			s3 := &fakeStream{name: "a.tmp"}
			old := idx.Put([]byte("a.tmp@1"), s3)
			assert.Equal(t, s1, old)
			assert.Equal(t, s3, idx.Get([]byte("a.tmp@1")))
			assert.Equal(t, 2, idx.Size())
		})
	}
}

func TestIndexer_Delete(t *testing.T) {
	for name, idx := range indexers() {
		t.Run(name, func(t *testing.T) {
			s1 := &fakeStream{name: "a.tmp"}
			idx.Put([]byte("a.tmp@1"), s1)

			old, ok := idx.Delete([]byte("a.tmp@1"))
			assert.True(t, ok)
			assert.Equal(t, s1, old)
			assert.Equal(t, 0, idx.Size())

			old, ok = idx.Delete([]byte("a.tmp@1"))
			assert.False(t, ok)
			assert.Nil(t, old)
		})
	}
}

func TestIndexer_Iterator(t *testing.T) {
	for name, idx := range indexers() {
		t.Run(name, func(t *testing.T) {
			keys := []string{"/tmp/x/b@2", "/tmp/x/a@1", "/tmp/y/c@3", "/var/d@4"}
			for _, k := range keys {
				idx.Put([]byte(k), &fakeStream{name: k})
			}

			// 全部遍历，按 key 有序
			iter := idx.Iterator(nil, false)
			var got []string
			for iter.Rewind(); iter.Valid(); iter.Next() {
				got = append(got, string(iter.Key()))
			}
			iter.Close()
			assert.Equal(t, []string{"/tmp/x/a@1", "/tmp/x/b@2", "/tmp/y/c@3", "/var/d@4"}, got)

			// 前缀遍历
			iter = idx.Iterator([]byte("/tmp/"), false)
			got = got[:0]
			for iter.Rewind(); iter.Valid(); iter.Next() {
				got = append(got, iter.Value().Name())
			}
			iter.Close()
			assert.Equal(t, []string{"/tmp/x/a@1", "/tmp/x/b@2", "/tmp/y/c@3"}, got)

			// 反向遍历
			iter = idx.Iterator([]byte("/tmp/x/"), true)
			got = got[:0]
			for iter.Rewind(); iter.Valid(); iter.Next() {
				got = append(got, string(iter.Key()))
			}
			iter.Close()
			assert.Equal(t, []string{"/tmp/x/b@2", "/tmp/x/a@1"}, got)

			// 前缀在 key 的中间断开
			iter = idx.Iterator([]byte("/tmp/x/a"), false)
			got = got[:0]
			for iter.Rewind(); iter.Valid(); iter.Next() {
				got = append(got, iter.Value().Name())
			}
			iter.Close()
			assert.Equal(t, []string{"/tmp/x/a@1"}, got)

			iter = idx.Iterator([]byte("/tmp/x/b@2"), false)
			assert.True(t, iter.Valid())
			assert.Equal(t, "/tmp/x/b@2", string(iter.Key()))
			iter.Close()

			// 前缀无匹配
			iter = idx.Iterator([]byte("/home/"), false)
			assert.False(t, iter.Valid())
			iter.Close()
		})
	}
}

func TestIndexer_Iterator_Seek(t *testing.T) {
	for name, idx := range indexers() {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"aa", "bb", "cc", "dd"} {
				idx.Put([]byte(k), &fakeStream{name: k})
			}

			iter := idx.Iterator(nil, false)
			iter.Seek([]byte("bc"))
			assert.True(t, iter.Valid())
			assert.Equal(t, "cc", string(iter.Key()))
			iter.Close()

			iter = idx.Iterator(nil, true)
			iter.Seek([]byte("bc"))
			assert.True(t, iter.Valid())
			assert.Equal(t, "bb", string(iter.Key()))
			iter.Next()
			assert.Equal(t, "aa", string(iter.Key()))
			iter.Next()
			assert.False(t, iter.Valid())
			iter.Close()
		})
	}
}
