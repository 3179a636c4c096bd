package model

import (
	"fmt"
	"strings"
	"time"
)

// Investor 贡献记录，创建后不可修改
type Investor struct {
	ID                   int64     `json:"investorId" gorm:"primaryKey"`
	ProjectID            int64     `json:"projectId" gorm:"not null;index"`
	WalletAddress        string    `json:"walletAddress" gorm:"not null;index"`
	ContributionAmount   float64   `json:"contributionAmount" gorm:"not null"`
	ContributionCurrency Currency  `json:"contributionCurrency" gorm:"not null"`
	Timestamp            time.Time `json:"timestamp" gorm:"not null"`
	TransactionHash      string    `json:"transactionHash,omitempty"`
}

// TableName 自定义表名
func (Investor) TableName() string {
	return "investor"
}

// Currency 贡献币种
type Currency string

const (
	CurrencySOL  Currency = "SOL"
	CurrencyUSDC Currency = "USDC"
)

// ParseCurrency 解析币种，大小写不敏感
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencySOL:
		return CurrencySOL, nil
	case CurrencyUSDC:
		return CurrencyUSDC, nil
	}
	return "", fmt.Errorf("unsupported currency %q", s)
}
