/*
Package recommendation turns a patient metrics snapshot into a bundle of
actionable suggestions. The Orchestrator prefers an external generative model
and degrades to the deterministic rules in GenerateFallback whenever the model
call fails or its output cannot be parsed.
*/
package recommendation

// Category classifies what area of care an Item targets.
type Category string

const (
	CategoryTherapy   Category = "therapy"
	CategoryLifestyle Category = "lifestyle"
	CategoryExercise  Category = "exercise"
	CategorySafety    Category = "safety"
)

// Priority is how urgently the patient should act on an Item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionKind tells the client which kind of call-to-action to render.
type ActionKind string

const (
	ActionTherapySetting ActionKind = "therapy_setting"
	ActionExercise       ActionKind = "exercise"
	ActionGuide          ActionKind = "guide"
	ActionArticle        ActionKind = "article"
)

// Categories, Priorities and ActionKinds list the allowed enumeration values in
// the order they are presented to the model.
var (
	Categories  = []Category{CategoryTherapy, CategoryLifestyle, CategoryExercise, CategorySafety}
	Priorities  = []Priority{PriorityHigh, PriorityMedium, PriorityLow}
	ActionKinds = []ActionKind{ActionTherapySetting, ActionExercise, ActionGuide, ActionArticle}
)

// Item is one actionable suggestion. JSON names match what the mobile client
// and the model contract expect.
type Item struct {
	ID          int        `json:"id"`
	Type        Category   `json:"type"`
	Priority    Priority   `json:"priority"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ActionType  ActionKind `json:"actionType"`
	ActionText  string     `json:"actionText"`
	Rationale   string     `json:"rationale"`
}

// Bundle is the unit returned to callers by both generation paths.
// Item ids are contiguous from 1 in generation order.
type Bundle struct {
	Recommendations []Item   `json:"recommendations"`
	Summary         string   `json:"summary"`
	Alerts          []string `json:"alerts"`
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// CategoryValues returns Categories as plain strings.
func CategoryValues() []string { return stringsOf(Categories) }

// PriorityValues returns Priorities as plain strings.
func PriorityValues() []string { return stringsOf(Priorities) }

// ActionKindValues returns ActionKinds as plain strings.
func ActionKindValues() []string { return stringsOf(ActionKinds) }
