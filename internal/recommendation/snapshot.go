package recommendation

// Defaults substituted into the prompt when a snapshot field is absent.
const (
	DefaultAge                  = 35
	DefaultGender               = "Nam"
	DefaultPainLocation         = "Cổ và vai"
	DefaultPainLevel            = 6
	DefaultEMGRMS               = 45.6
	DefaultHeartRate            = 72
	DefaultHRV                  = 28.5
	DefaultEDAPeaks             = 12
	DefaultTemperature          = 37.2
	DefaultInflammation         = "Nhẹ"
	DefaultTENSMinutes          = 150
	DefaultMicrocurrentMinutes  = 210
	DefaultAvgFrequency         = 85.0
	DefaultAvgIntensity         = 65.0
	DefaultRecoveryScore        = 78
	DefaultPainTrend            = "Cải thiện"
	DefaultTherapyEffectiveness = "Tốt"
	DefaultMuscleTensionPeaks   = 3
)

// The fallback rules read EMG and temperature against their own resting
// baselines, which differ from the prompt defaults above.
const (
	RuleDefaultEMGRMS      = 45.0
	RuleDefaultTemperature = 37.0
)

// Gender values accepted from the client.
const (
	GenderMale   = "Nam"
	GenderFemale = "Nữ"
	GenderOther  = "Khác"
)

// Snapshot is a point-in-time view of a patient's physiological and therapy
// metrics. Every field is optional; nil means "use the documented default".
// A Snapshot is passed by value and never mutated by this package.
type Snapshot struct {
	UserID       string  `json:"user_id"`
	Age          *int    `json:"age,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	PainLocation *string `json:"pain_location,omitempty"`
	PainLevel    *int    `json:"pain_level,omitempty"`

	EMGRMS       *float64 `json:"emg_rms,omitempty"`
	HeartRate    *int     `json:"heart_rate,omitempty"`
	HRV          *float64 `json:"hrv,omitempty"`
	EDAPeaks     *int     `json:"eda_peaks,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	Inflammation *string  `json:"inflammation,omitempty"`

	TENSMinutes         *int     `json:"tens_minutes,omitempty"`
	MicrocurrentMinutes *int     `json:"microcurrent_minutes,omitempty"`
	AvgFrequency        *float64 `json:"avg_frequency,omitempty"`
	AvgIntensity        *float64 `json:"avg_intensity,omitempty"`
	RecoveryScore       *int     `json:"recovery_score,omitempty"`

	PainTrend            *string `json:"pain_trend,omitempty"`
	TherapyEffectiveness *string `json:"therapy_effectiveness,omitempty"`
	MuscleTensionPeaks   *int    `json:"muscle_tension_peaks,omitempty"`
}

// ValueOr dereferences p, or returns def when p is nil.
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Ptr returns a pointer to v. Handy when building snapshots in code.
func Ptr[T any](v T) *T {
	return &v
}

// WithRequestDefaults returns a copy in which the fields a client normally
// sends are filled with their defaults. History and trend fields stay nil so
// the prompt keeps rendering its own defaults for them.
func (s Snapshot) WithRequestDefaults() Snapshot {
	fill := func(dst **int, def int) {
		if *dst == nil {
			*dst = Ptr(def)
		}
	}
	fillF := func(dst **float64, def float64) {
		if *dst == nil {
			*dst = Ptr(def)
		}
	}
	fillS := func(dst **string, def string) {
		if *dst == nil {
			*dst = Ptr(def)
		}
	}

	out := s
	fill(&out.Age, DefaultAge)
	fillS(&out.Gender, DefaultGender)
	fillS(&out.PainLocation, DefaultPainLocation)
	fill(&out.PainLevel, DefaultPainLevel)
	fillF(&out.EMGRMS, DefaultEMGRMS)
	fill(&out.HeartRate, DefaultHeartRate)
	fillF(&out.HRV, DefaultHRV)
	fill(&out.EDAPeaks, DefaultEDAPeaks)
	fillF(&out.Temperature, DefaultTemperature)
	fillS(&out.Inflammation, DefaultInflammation)
	fill(&out.RecoveryScore, DefaultRecoveryScore)
	return out
}
