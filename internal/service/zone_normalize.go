package service

import (
	"strings"
	"unicode"
)

// NormalizePostcode 邮编规范化：转大写并去除所有空白字符
func NormalizePostcode(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// NormalizeCity 城市规范化：去首尾空白并转小写
func NormalizeCity(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizePrefixes 规范化邮编前缀列表，丢弃空值并按首次出现顺序去重
func NormalizePrefixes(raw []string) []string {
	result := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		prefix := NormalizePostcode(item)
		if prefix == "" {
			continue
		}
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		result = append(result, prefix)
	}
	return result
}

// displayPostcode 地址展示用邮编：转大写并把连续空白压缩为单个空格
func displayPostcode(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}
