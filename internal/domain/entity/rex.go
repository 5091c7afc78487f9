package entity

import (
	"time"
)

// RexIDPrefix is kept on every generated record id so existing consumers that
// key on the "rex_" prefix keep working.
const RexIDPrefix = "rex_"

// Attachment represents a reference to a file attached to a REX record.
// Upload is handled by a separate service; records are created with an
// empty attachment list.
type Attachment struct {
	Filename    string `json:"filename" bson:"filename"`
	ContentType string `json:"contentType" bson:"contentType"`
	URL         string `json:"url" bson:"url"`
}

// ReturnOfExperience is a lessons-learned record captured after a
// maintenance window. WindowID is the relational reference to the window
// the record belongs to; records imported from the legacy store may carry
// an empty WindowID and are associated heuristically instead.
type ReturnOfExperience struct {
	ID               string       `json:"id" bson:"_id"`
	WindowID         string       `json:"windowId" bson:"windowId"`
	Summary          string       `json:"summary" bson:"summary"`
	RootCause        string       `json:"rootCause" bson:"rootCause"`
	CorrectionAction string       `json:"correctionAction" bson:"correctionAction"`
	PreventiveAction string       `json:"preventiveAction" bson:"preventiveAction"`
	LessonsLearned   string       `json:"lessonsLearned" bson:"lessonsLearned"`
	Recommendations  string       `json:"recommendations" bson:"recommendations"`
	Attachments      []Attachment `json:"attachments" bson:"attachments"`
	CreatedBy        string       `json:"createdBy" bson:"createdBy"`
	CreatedAt        time.Time    `json:"createdAt" bson:"createdAt"`
}

// RexInput carries the submitted form fields for a new record.
// Summary and RootCause are mandatory, everything else is optional.
type RexInput struct {
	Summary          string `json:"summary"`
	RootCause        string `json:"rootCause"`
	CorrectionAction string `json:"correctionAction"`
	PreventiveAction string `json:"preventiveAction"`
	LessonsLearned   string `json:"lessonsLearned"`
	Recommendations  string `json:"recommendations"`
}
