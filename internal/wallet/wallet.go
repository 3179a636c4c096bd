// Package wallet 钱包身份。服务端不做签名校验，地址只作为不透明的身份标识，
// 这里只识别其格式，便于日志与前端展示。
package wallet

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// Kind 地址格式
type Kind string

const (
	KindEVM    Kind = "evm"    // 0x开头的20字节十六进制地址
	KindSolana Kind = "solana" // base58编码的32字节公钥
	KindOpaque Kind = "opaque" // 其他格式，原样保留
)

// ErrEmptyAddress 未连接钱包
var ErrEmptyAddress = errors.New("wallet address is required")

// Address 规范化后的钱包地址
type Address struct {
	Value string
	Kind  Kind
}

func (a Address) String() string {
	return a.Value
}

// Parse 去除首尾空白并识别地址格式，空地址返回 ErrEmptyAddress
func Parse(raw string) (Address, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Address{}, ErrEmptyAddress
	}
	return Address{Value: s, Kind: Classify(s)}, nil
}

// Classify 识别地址格式
func Classify(s string) Kind {
	if common.IsHexAddress(s) && strings.HasPrefix(strings.ToLower(s), "0x") {
		return KindEVM
	}
	if b, err := base58.Decode(s); err == nil && len(b) == 32 {
		return KindSolana
	}
	return KindOpaque
}

// Short 缩略展示，例如 0x742d...0e20
func Short(s string) string {
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}
