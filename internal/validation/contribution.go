package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/blues/launchpad/internal/model"
)

// 贡献金额默认上下限
const (
	DefaultMinContribution = 0.1
	DefaultMaxContribution = 1000
)

// ParseAmount 严格解析金额文本，NaN/Inf视为非法
func ParseAmount(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q is not finite", text)
	}
	return v, nil
}

// ValidateContribution 校验贡献金额。
// 与项目表单不同，命中第一条规则即返回，结果最多一条错误。
func ValidateContribution(amountText string, currency model.Currency, minAmount, maxAmount float64) Result {
	if strings.TrimSpace(amountText) == "" {
		return newResult([]FieldError{{Field: "amount", Code: RequiredField, Message: fmt.Sprintf("Please enter an amount in %s", currency)}})
	}

	amount, err := ParseAmount(amountText)
	if err != nil {
		return newResult([]FieldError{{Field: "amount", Code: FormatInvalid, Message: "Please enter a valid number"}})
	}

	if amount < minAmount {
		return newResult([]FieldError{{Field: "amount", Code: BelowMinimum, Message: fmt.Sprintf("Minimum contribution is %s %s", formatAmount(minAmount), currency)}})
	}
	if amount > maxAmount {
		return newResult([]FieldError{{Field: "amount", Code: AboveMaximum, Message: fmt.Sprintf("Maximum contribution is %s %s", formatAmount(maxAmount), currency)}})
	}

	return newResult(nil)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
