package recommendation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserMessage_Defaults(t *testing.T) {
	msg := BuildUserMessage(Snapshot{})

	for _, want := range []string{
		"THÔNG TIN BỆNH NHÂN:",
		"- Tuổi: 35",
		"- Giới tính: Nam",
		"- Vùng đau: Cổ và vai",
		"- Mức độ đau chủ quan: 6/10",
		"DỮ LIỆU SINH LÝ HIỆN TẠI:",
		"- EMG RMS: 45.6 µV",
		"- Nhịp tim: 72 bpm",
		"- HRV: 28.5 ms",
		"- EDA peaks: 12 peaks",
		"- Nhiệt độ vùng đau: 37.2°C",
		"- Tình trạng viêm: Nhẹ",
		"LỊCH SỬ LIỆU PHÁP (7 NGÀY QUA):",
		"- Tổng thời gian TENS: 150 phút",
		"- Tổng thời gian Microcurrent: 210 phút",
		"- Tần số trung bình: 85 Hz",
		"- Cường độ trung bình: 65%",
		"- Điểm phục hồi hiện tại: 78/100",
		"XU HƯỚNG:",
		"- Xu hướng đau: Cải thiện",
		"- Hiệu quả trị liệu: Tốt",
		"- Căng cơ cao điểm: 3 lần/ngày",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestSystemInstruction_Contract(t *testing.T) {
	assert.Contains(t, SystemInstruction, `"type": "therapy|lifestyle|exercise|safety"`)
	assert.Contains(t, SystemInstruction, `"priority": "high|medium|low"`)
	assert.Contains(t, SystemInstruction, `"actionType": "therapy_setting|exercise|guide|article"`)
	assert.Contains(t, SystemInstruction, "TIẾNG VIỆT")
}

func TestSessionID(t *testing.T) {
	day := time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "biopatch-p1-20260102", SessionID("p1", day))
	assert.Equal(t, "biopatch-default-20260102", SessionID("", day))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1}  "))
	assert.Equal(t, `{"a":1}`, StripCodeFence("{\"a\":1}\n```"))
}

func TestWithRequestDefaults(t *testing.T) {
	s := Snapshot{UserID: "u", HeartRate: Ptr(101)}.WithRequestDefaults()

	assert.Equal(t, 101, *s.HeartRate)
	assert.Equal(t, DefaultEMGRMS, *s.EMGRMS)
	assert.Equal(t, DefaultTemperature, *s.Temperature)
	assert.Equal(t, DefaultRecoveryScore, *s.RecoveryScore)
	assert.Nil(t, s.TENSMinutes)
	assert.Nil(t, s.PainTrend)
}
