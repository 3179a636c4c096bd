// Package txhash 生成模拟交易的占位哈希。
package txhash

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Generator 占位哈希生成器
type Generator interface {
	Next(projectID int64, wallet string) string
}

// GeneratorFunc 函数适配
type GeneratorFunc func(projectID int64, wallet string) string

func (f GeneratorFunc) Next(projectID int64, wallet string) string {
	return f(projectID, wallet)
}

// Random 基于随机数的keccak256哈希，格式与链上交易哈希一致（0x + 64位十六进制）
func Random() Generator {
	return GeneratorFunc(func(projectID int64, wallet string) string {
		nonce := make([]byte, 16)
		_, _ = rand.Read(nonce)

		buf := make([]byte, 16)
		binary.BigEndian.PutUint64(buf[:8], uint64(projectID))
		binary.BigEndian.PutUint64(buf[8:], uint64(time.Now().UnixNano()))

		return crypto.Keccak256Hash(nonce, buf, []byte(wallet)).Hex()
	})
}

// IsHash 判断是否为0x开头的32字节十六进制哈希
func IsHash(s string) bool {
	if len(s) != 2+2*common.HashLength || s[:2] != "0x" {
		return false
	}
	for _, c := range s[2:] {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
