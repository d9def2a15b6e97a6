package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	letters = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	randStr = rand.New(rand.NewSource(time.Now().Unix()))
)

// GetTestFileName 获取测试使用的文件名
func GetTestFileName(i int) string {
	return fmt.Sprintf("cfile-go-%09d.tmp", i)
}

// RandomValue 生成随机内容，用于测试
// 参数 n 表示随机部分的长度
func RandomValue(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[randStr.Intn(len(letters))]
	}
	return []byte("cfile-go-value-" + string(b))
}

// RandomInts 生成 n 个非负随机整数，用于读写测试
func RandomInts(n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = randStr.Intn(1 << 30)
	}
	return values
}
