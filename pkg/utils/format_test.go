package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"farm_admin_v1/internal/api/dto"
)

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "2025-08-01 09:30:00", FormatDateTime("2025-08-01 09:30:00"))
	assert.Equal(t, "2025-08-01 00:00:00", FormatDateTime("2025-08-01"))
	assert.Equal(t, "-", FormatDateTime(""))
	assert.Equal(t, "-", FormatDateTime("不是时间"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-08-01", FormatDate("2025-08-01 09:30:00"))
	assert.Equal(t, "-", FormatDate(""))
}

func TestFormatRelativeTime(t *testing.T) {
	layout := "2006-01-02 15:04:05"

	assert.Equal(t, "-", FormatRelativeTime(""))
	assert.Equal(t, "几秒前", FormatRelativeTime(time.Now().Add(-10*time.Second).Format(layout)))
	assert.Equal(t, "1 分钟前", FormatRelativeTime(time.Now().Add(-time.Minute).Format(layout)))
	assert.Equal(t, "5 分钟前", FormatRelativeTime(time.Now().Add(-5*time.Minute).Format(layout)))
	assert.Equal(t, "3 小时前", FormatRelativeTime(time.Now().Add(-3*time.Hour).Format(layout)))
	assert.Equal(t, "2 天前", FormatRelativeTime(time.Now().Add(-48*time.Hour).Format(layout)))
	// 未来时间带 "内"
	assert.Equal(t, "5 分钟内", FormatRelativeTime(time.Now().Add(5*time.Minute+5*time.Second).Format(layout)))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "1,234,567", FormatNumber(int64(1234567)))
	assert.Equal(t, "1,234,567", FormatNumber("1234567"))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "-", FormatNumber(""))
	assert.Equal(t, "-", FormatNumber("abc"))
	assert.Equal(t, "-", FormatNumber(nil))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatFileSize(0))
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "1 MB", FormatFileSize(1024*1024))
	assert.Equal(t, "1 TB", FormatFileSize(1024*1024*1024*1024))
	// 超过最大单位仍按 TB 表示
	assert.Equal(t, "2048 TB", FormatFileSize(2048*1024*1024*1024*1024))
	assert.Equal(t, "-", FormatFileSize(-1))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "", TruncateText("", 5))
	assert.Equal(t, "短文本", TruncateText("短文本", 5))
	assert.Equal(t, "这是一段很...", TruncateText("这是一段很长的中文文本", 5))
	assert.Equal(t, "abcde...", TruncateText("abcdefgh", 5))
}

func TestMaskSensitive(t *testing.T) {
	// 长度 8，start=3 end=4，中段刚好 1 位
	assert.Equal(t, "123*5678", MaskSensitive("12345678", 3, 4))
	assert.Equal(t, "138****5678", MaskSensitive("13812345678", 3, 4))
	// 长度不足不做遮蔽
	assert.Equal(t, "1234567", MaskSensitive("1234567", 3, 4))
	assert.Equal(t, "", MaskSensitive("", 3, 4))
	// 负数参数按 0 处理
	assert.Equal(t, "********", MaskSensitive("12345678", -1, -1))
	// 幂等：对已遮蔽的同形串再遮蔽输出不变
	masked := MaskSensitive("13812345678", 3, 4)
	assert.Equal(t, masked, MaskSensitive(masked, 3, 4))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "138****5678", FormatPhone("13812345678"))
	assert.Equal(t, "-", FormatPhone(""))
}

func TestFormatAddress(t *testing.T) {
	addr := &dto.AddressSnapshot{
		Province: "浙江省", City: "杭州市", District: "西湖区", Detail: "文三路1号",
	}
	assert.Equal(t, "浙江省杭州市西湖区文三路1号", FormatAddress(addr))
	assert.Equal(t, "浙江省杭州市西湖区", FormatAddressShort(addr))
	assert.Equal(t, "-", FormatAddress(nil))
	assert.Equal(t, "-", FormatAddressShort(nil))

	// 缺失字段直接跳过拼接
	partial := &dto.AddressSnapshot{Province: "广东省", Detail: "某某街 1 号"}
	assert.Equal(t, "广东省某某街 1 号", FormatAddress(partial))
}
