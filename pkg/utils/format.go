package utils

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"farm_admin_v1/internal/api/dto"
)

// ==================== 展示格式化 ====================

// 格式化函数都是全函数：任意输入都不报错，
// 空值或解析失败统一渲染为 "-"。

const fallback = "-"

var numPrinter = message.NewPrinter(language.SimplifiedChinese)

// 后端时间字段的几种常见格式，按顺序尝试
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime 格式化为 "2006-01-02 15:04:05"
func FormatDateTime(s string) string {
	t, parsed := parseTime(s)
	if !parsed {
		return fallback
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDate 格式化为 "2006-01-02"
func FormatDate(s string) string {
	t, parsed := parseTime(s)
	if !parsed {
		return fallback
	}
	return t.Format("2006-01-02")
}

// FormatRelativeTime 格式化为相对当前时刻的中文描述，
// 过去的时间带 "前"，未来的时间带 "内"。
func FormatRelativeTime(s string) string {
	t, parsed := parseTime(s)
	if !parsed {
		return fallback
	}

	diff := time.Since(t)
	suffix := "前"
	if diff < 0 {
		diff = -diff
		suffix = "内"
	}
	return relativeSpan(diff) + suffix
}

// relativeSpan 把时长归档到人类可读的粒度
func relativeSpan(d time.Duration) string {
	switch {
	case d < 45*time.Second:
		return "几秒"
	case d < 90*time.Second:
		return "1 分钟"
	case d < 45*time.Minute:
		return strconv.Itoa(int(math.Round(d.Minutes()))) + " 分钟"
	case d < 90*time.Minute:
		return "1 小时"
	case d < 22*time.Hour:
		return strconv.Itoa(int(math.Round(d.Hours()))) + " 小时"
	case d < 36*time.Hour:
		return "1 天"
	case d < 26*24*time.Hour:
		return strconv.Itoa(int(math.Round(d.Hours()/24))) + " 天"
	case d < 46*24*time.Hour:
		return "1 个月"
	case d < 320*24*time.Hour:
		return strconv.Itoa(int(math.Round(d.Hours()/24/30))) + " 个月"
	case d < 548*24*time.Hour:
		return "1 年"
	default:
		return strconv.Itoa(int(math.Round(d.Hours()/24/365))) + " 年"
	}
}

// FormatNumber 千分位格式化。接受整数、浮点数和数字字符串，
// 空串和非法数字渲染为 "-"。
func FormatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return numPrinter.Sprint(number.Decimal(n))
	case int32:
		return numPrinter.Sprint(number.Decimal(n))
	case int64:
		return numPrinter.Sprint(number.Decimal(n))
	case uint:
		return numPrinter.Sprint(number.Decimal(n))
	case uint64:
		return numPrinter.Sprint(number.Decimal(n))
	case float32:
		return formatFloat(float64(n))
	case float64:
		return formatFloat(n)
	case string:
		if n == "" {
			return fallback
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return fallback
		}
		return formatFloat(f)
	default:
		return fallback
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return numPrinter.Sprint(number.Decimal(f))
}

// FormatFileSize 按 1024 进制格式化字节数，最大到 TB，保留两位小数（去尾零）
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return fallback
	}
	if bytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[unit]
}

// TruncateText 截断到 maxLength 个字符（按 rune 计），超长补省略号
func TruncateText(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 0 {
		return "..."
	}
	return string(runes[:maxLength]) + "..."
}

// MaskSensitive 遮蔽中段字符，保留前 start 位和后 end 位。
// 长度不足 start+end 时原样返回，不做破坏性遮蔽。
func MaskSensitive(str string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	runes := []rune(str)
	if str == "" || len(runes) <= start+end {
		return str
	}
	masked := strings.Repeat("*", len(runes)-start-end)
	return string(runes[:start]) + masked + string(runes[len(runes)-end:])
}

// FormatPhone 手机号打码展示（保留前 3 后 4）
func FormatPhone(phone string) string {
	if phone == "" {
		return fallback
	}
	return MaskSensitive(phone, 3, 4)
}

// FormatAddress 拼接完整地址
func FormatAddress(addr *dto.AddressSnapshot) string {
	if addr == nil {
		return fallback
	}
	return addr.Province + addr.City + addr.District + addr.Detail
}

// FormatAddressShort 拼接省市区（不含详细地址）
func FormatAddressShort(addr *dto.AddressSnapshot) string {
	if addr == nil {
		return fallback
	}
	return addr.Province + addr.City + addr.District
}
