package recommendation

import (
	"fmt"
	"strings"
	"time"
)

/* =================================================================================
						PROMPT ENGINEERING & GUARDRAILS
=================================================================================*/

// SystemInstruction sets the persona and the output contract for the model.
// Every user-facing string must come back in Vietnamese.
var SystemInstruction = fmt.Sprintf(`You are a medical AI assistant specialized in pain management and physiotherapy for the BioPatch smart pain monitoring system.

LANGUAGE OUTPUT:
VIẾT TOÀN BỘ NỘI DUNG HIỂN THỊ (title, description, actionText, summary, alerts) BẰNG TIẾNG VIỆT.

TASK:
Analyze the provided patient data and generate 3-4 personalized recommendations. Focus on:
1. Therapy adjustments (TENS/Microcurrent settings)
2. Lifestyle modifications
3. Exercise recommendations
4. Safety alerts if needed

Base recommendations on EMG levels, heart rate variability, temperature readings, and previous therapy effectiveness.

RESPONSE FORMAT:
Return ONLY a JSON object with this exact structure, no markdown and no preamble:
{
  "recommendations": [
    {
      "id": 1,
      "type": "%s",
      "priority": "%s",
      "title": "Vietnamese title",
      "description": "Vietnamese description",
      "actionType": "%s",
      "actionText": "Vietnamese action button text",
      "rationale": "Why this recommendation is important"
    }
  ],
  "summary": "Overall health assessment in Vietnamese",
  "alerts": ["Any safety concerns in Vietnamese"]
}
- "id" starts at 1 and increases by one for each recommendation.
- "alerts" is an empty array when there is nothing to flag.`,
	strings.Join(CategoryValues(), "|"),
	strings.Join(PriorityValues(), "|"),
	strings.Join(ActionKindValues(), "|"),
)

// userMessageTemplate is filled by BuildUserMessage, grouped the way a
// clinician reads a patch report.
const userMessageTemplate = `
Phân tích dữ liệu bệnh nhân BioPatch:

THÔNG TIN BỆNH NHÂN:
- Tuổi: %d
- Giới tính: %s
- Vùng đau: %s
- Mức độ đau chủ quan: %d/10

DỮ LIỆU SINH LÝ HIỆN TẠI:
- EMG RMS: %v µV
- Nhịp tim: %d bpm
- HRV: %v ms
- EDA peaks: %d peaks
- Nhiệt độ vùng đau: %v°C
- Tình trạng viêm: %s

LỊCH SỬ LIỆU PHÁP (7 NGÀY QUA):
- Tổng thời gian TENS: %d phút
- Tổng thời gian Microcurrent: %d phút
- Tần số trung bình: %v Hz
- Cường độ trung bình: %v%%
- Điểm phục hồi hiện tại: %d/100

XU HƯỚNG:
- Xu hướng đau: %s
- Hiệu quả trị liệu: %s
- Căng cơ cao điểm: %d lần/ngày

Vui lòng tạo khuyến nghị cá nhân hóa để cải thiện tình trạng phục hồi.
`

// BuildUserMessage renders every snapshot field, substituting defaults for
// the absent ones.
func BuildUserMessage(s Snapshot) string {
	return fmt.Sprintf(userMessageTemplate,
		ValueOr(s.Age, DefaultAge),
		ValueOr(s.Gender, DefaultGender),
		ValueOr(s.PainLocation, DefaultPainLocation),
		ValueOr(s.PainLevel, DefaultPainLevel),

		ValueOr(s.EMGRMS, DefaultEMGRMS),
		ValueOr(s.HeartRate, DefaultHeartRate),
		ValueOr(s.HRV, DefaultHRV),
		ValueOr(s.EDAPeaks, DefaultEDAPeaks),
		ValueOr(s.Temperature, DefaultTemperature),
		ValueOr(s.Inflammation, DefaultInflammation),

		ValueOr(s.TENSMinutes, DefaultTENSMinutes),
		ValueOr(s.MicrocurrentMinutes, DefaultMicrocurrentMinutes),
		ValueOr(s.AvgFrequency, DefaultAvgFrequency),
		ValueOr(s.AvgIntensity, DefaultAvgIntensity),
		ValueOr(s.RecoveryScore, DefaultRecoveryScore),

		ValueOr(s.PainTrend, DefaultPainTrend),
		ValueOr(s.TherapyEffectiveness, DefaultTherapyEffectiveness),
		ValueOr(s.MuscleTensionPeaks, DefaultMuscleTensionPeaks),
	)
}

// SessionID derives the per-patient, per-day context hint sent alongside the
// prompt, e.g. "biopatch-u42-20261019".
func SessionID(userID string, now time.Time) string {
	if userID == "" {
		userID = "default"
	}
	return fmt.Sprintf("biopatch-%s-%s", userID, now.Format("20060102"))
}
