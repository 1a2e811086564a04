package recommendation

import "fmt"

// Thresholds above which a rule fires. Comparisons are strict.
const (
	EMGHighThreshold         = 60.0 // µV
	TemperatureHighThreshold = 37.5 // °C
	HeartRateHighThreshold   = 90   // bpm
)

const (
	highTemperatureAlert = "Nhiệt độ vùng đau cao hơn bình thường"
	summaryTemplate      = "Phân tích tổng thể: Điểm phục hồi %d/100 cho thấy tiến triển tích cực. Cần chú ý theo dõi và điều chỉnh liệu pháp phù hợp."
)

// GenerateFallback derives a bundle from s using fixed thresholds. It never
// fails and always ends with the stretching exercise item.
func GenerateFallback(s Snapshot) Bundle {
	items := make([]Item, 0, 4)
	alerts := []string{}

	add := func(it Item) {
		it.ID = len(items) + 1
		items = append(items, it)
	}

	if ValueOr(s.EMGRMS, RuleDefaultEMGRMS) > EMGHighThreshold {
		add(Item{
			Type:        CategoryTherapy,
			Priority:    PriorityHigh,
			Title:       "Tăng cường liệu pháp microcurrent",
			Description: "EMG cao cho thấy căng cơ tăng. Tăng thời gian microcurrent 10 phút/phiên.",
			ActionType:  ActionTherapySetting,
			ActionText:  "Cập nhật cài đặt",
			Rationale:   "Microcurrent giúp giảm căng cơ hiệu quả",
		})
	}

	if ValueOr(s.Temperature, RuleDefaultTemperature) > TemperatureHighThreshold {
		add(Item{
			Type:        CategorySafety,
			Priority:    PriorityHigh,
			Title:       "Giám sát tình trạng viêm",
			Description: "Nhiệt độ vùng đau cao. Theo dõi sát và nghỉ ngơi.",
			ActionType:  ActionGuide,
			ActionText:  "Xem hướng dẫn",
			Rationale:   "Nhiệt độ cao có thể chỉ ra viêm cấp tính",
		})
		alerts = append(alerts, highTemperatureAlert)
	}

	if ValueOr(s.HeartRate, DefaultHeartRate) > HeartRateHighThreshold {
		add(Item{
			Type:        CategoryLifestyle,
			Priority:    PriorityMedium,
			Title:       "Kỹ thuật thư giãn và hít thở",
			Description: "Nhịp tim hơi cao. Thực hiện bài tập hít thở sâu 10 phút/ngày.",
			ActionType:  ActionExercise,
			ActionText:  "Học kỹ thuật",
			Rationale:   "Hít thở sâu giúp giảm stress và nhịp tim",
		})
	}

	add(Item{
		Type:        CategoryExercise,
		Priority:    PriorityMedium,
		Title:       "Bài tập giãn cơ cổ vai",
		Description: "Thực hiện bài tập giãn cơ 15 phút mỗi sáng để cải thiện độ linh hoạt.",
		ActionType:  ActionExercise,
		ActionText:  "Xem video hướng dẫn",
		Rationale:   "Giãn cơ đều đặn giúp ngăn ngừa căng cơ",
	})

	return Bundle{
		Recommendations: items,
		Summary:         fmt.Sprintf(summaryTemplate, ValueOr(s.RecoveryScore, DefaultRecoveryScore)),
		Alerts:          alerts,
	}
}
