package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// 金额统一以最小货币单位（分）的 int64 存储，decimal 只用于输入解析与展示

var (
	errCentsInvalid  = errors.New("invalid money amount")
	errCentsNegative = errors.New("money amount must not be negative")
	errCentsScale    = errors.New("money amount supports at most 2 decimal places")
)

var hundred = decimal.NewFromInt(100)

// FormatCents 将分转换为两位小数字符串，如 1646 -> "16.46"
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParseCents 将十进制金额字符串转换为分，如 "2.50" -> 250
func ParseCents(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errCentsInvalid
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, errCentsInvalid
	}
	if amount.IsNegative() {
		return 0, errCentsNegative
	}
	scaled := amount.Mul(hundred)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, errCentsScale
	}
	if !scaled.BigInt().IsInt64() {
		return 0, errCentsInvalid
	}
	return scaled.IntPart(), nil
}
