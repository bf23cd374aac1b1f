package domain

// CustomFieldType defines the input types available for custom visit application fields.
type CustomFieldType string

const (
	FieldTypeText     CustomFieldType = "text"
	FieldTypeTextarea CustomFieldType = "textarea"
	FieldTypeSelect   CustomFieldType = "select"
	FieldTypeCheckbox CustomFieldType = "checkbox"
)

// ParseCustomFieldType validates a raw field type string.
func ParseCustomFieldType(s string) (CustomFieldType, bool) {
	switch CustomFieldType(s) {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeCheckbox:
		return CustomFieldType(s), true
	default:
		return "", false
	}
}

// OperatingHoursDay is one weekday entry of a space's weekly schedule.
// Open/close are minutes since local midnight in the space's timezone.
type OperatingHoursDay struct {
	DayOfWeek    int  `json:"dayOfWeek"` // 0 (Sunday) .. 6 (Saturday)
	OpenMinutes  int  `json:"openMinutes"`
	CloseMinutes int  `json:"closeMinutes"`
	IsClosed     bool `json:"isClosed"`
}

// CustomVisitField is an admin-defined intake question shown on the guest
// visit application form.
type CustomVisitField struct {
	FieldID     string          `json:"fieldId"`
	Label       string          `json:"label"`
	Type        CustomFieldType `json:"type"`
	Required    bool            `json:"required"`
	Options     []string        `json:"options,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

// CoworkingSpace is the single physical co-working location owned by an
// organization. Capacity bounds the number of confirmed bookings tolerated
// per day; operating hours always hold exactly one entry per weekday.
type CoworkingSpace struct {
	SpaceID            string              `json:"spaceID"`
	OrgID              string              `json:"orgID"`
	Name               string              `json:"name"`
	Capacity           int                 `json:"capacity"`
	Timezone           string              `json:"timezone"` // IANA name, e.g. "Europe/London"
	OperatingHours     []OperatingHoursDay `json:"operatingHours"`
	GuestAccessEnabled bool                `json:"guestAccessEnabled"`
	CustomVisitFields  []CustomVisitField  `json:"customVisitFields"`
	AuditFields
}

// OperatingHoursFor returns the schedule entry for the given weekday (0-6).
func (s *CoworkingSpace) OperatingHoursFor(dayOfWeek int) (OperatingHoursDay, bool) {
	for _, h := range s.OperatingHours {
		if h.DayOfWeek == dayOfWeek {
			return h, true
		}
	}
	return OperatingHoursDay{}, false
}
