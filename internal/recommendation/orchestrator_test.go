package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text  string
	err   error
	calls int

	gotSystem  string
	gotSession string
	gotUser    string
}

func (g *stubGenerator) Send(_ context.Context, system, session, user string) (string, error) {
	g.calls++
	g.gotSystem, g.gotSession, g.gotUser = system, session, user
	return g.text, g.err
}

const contractJSON = `{
  "recommendations": [
    {"id": 1, "type": "therapy", "priority": "high", "title": "Giảm cường độ TENS",
     "description": "Giảm cường độ xuống 55%.", "actionType": "therapy_setting",
     "actionText": "Áp dụng", "rationale": "EMG giảm ổn định"},
    {"id": 2, "type": "exercise", "priority": "low", "title": "Đi bộ nhẹ",
     "description": "Đi bộ 20 phút mỗi tối.", "actionType": "exercise",
     "actionText": "Bắt đầu", "rationale": "Tăng tuần hoàn"}
  ],
  "summary": "Tình trạng cải thiện tốt.",
  "alerts": []
}`

var fixedNow = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func newTestOrchestrator(gen Generator) *Orchestrator {
	return NewOrchestrator(gen, WithClock(func() time.Time { return fixedNow }))
}

func TestOrchestrator_FencedJSON(t *testing.T) {
	gen := &stubGenerator{text: "```json\n" + contractJSON + "\n```"}
	o := newTestOrchestrator(gen)

	got := o.Generate(context.Background(), Snapshot{UserID: "u42"})

	var want Bundle
	require.NoError(t, json.Unmarshal([]byte(contractJSON), &want))
	assert.Equal(t, want, got)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "biopatch-u42-20261019", gen.gotSession)
	assert.Equal(t, SystemInstruction, gen.gotSystem)
}

func TestOrchestrator_PlainJSON(t *testing.T) {
	o := newTestOrchestrator(&stubGenerator{text: contractJSON})
	got := o.Generate(context.Background(), Snapshot{})
	assert.Len(t, got.Recommendations, 2)
	assert.Equal(t, "Tình trạng cải thiện tốt.", got.Summary)
}

func TestOrchestrator_TransportErrorFallsBack(t *testing.T) {
	snap := Snapshot{UserID: "u1", EMGRMS: Ptr(65.0), Temperature: Ptr(38.0), HeartRate: Ptr(95)}
	gen := &stubGenerator{err: errors.New("connection reset by peer")}

	got := newTestOrchestrator(gen).Generate(context.Background(), snap)

	assert.Equal(t, GenerateFallback(snap), got)
	assert.Equal(t, 1, gen.calls)
}

func TestOrchestrator_UnusableOutputFallsBack(t *testing.T) {
	snap := Snapshot{UserID: "u1", HeartRate: Ptr(99)}
	outputs := map[string]string{
		"prose":          "Xin lỗi, tôi không thể phân tích dữ liệu này.",
		"truncated":      "```json\n{\"recommendations\": [",
		"array":          `[{"id": 1}]`,
		"null":           "null",
		"wrong type":     `{"recommendations": "none", "summary": "x", "alerts": []}`,
		"empty response": "",
	}

	for name, text := range outputs {
		t.Run(name, func(t *testing.T) {
			got := newTestOrchestrator(&stubGenerator{text: text}).Generate(context.Background(), snap)
			assert.Equal(t, GenerateFallback(snap), got)
		})
	}
}

func TestOrchestrator_NilGeneratorFallsBack(t *testing.T) {
	snap := Snapshot{Temperature: Ptr(39.0)}
	got := NewOrchestrator(nil).Generate(context.Background(), snap)
	assert.Equal(t, GenerateFallback(snap), got)
}

func TestOrchestrator_PromptCarriesSnapshot(t *testing.T) {
	gen := &stubGenerator{text: contractJSON}
	snap := Snapshot{UserID: "u7", Age: Ptr(52), EMGRMS: Ptr(61.3), PainTrend: Ptr("Xấu đi")}

	newTestOrchestrator(gen).Generate(context.Background(), snap)

	assert.True(t, strings.Contains(gen.gotUser, "- Tuổi: 52"))
	assert.True(t, strings.Contains(gen.gotUser, "- EMG RMS: 61.3 µV"))
	assert.True(t, strings.Contains(gen.gotUser, "- Xu hướng đau: Xấu đi"))
}
