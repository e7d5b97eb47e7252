package api

import (
	"encoding/json"
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Validation messages returned to clients verbatim.
const (
	msgTitleRequired       = "title is required. Must be a string with less than 100 characters"
	msgDescriptionRequired = "description is required. Must be a string with less than 500 characters"
	msgTitleInvalid        = "field title must be a string with less than 100 characters"
	msgDescriptionInvalid  = "field description must be a string with less than 500 characters"
	msgStateInvalid        = "field state can be 'pending' or 'complete'"
)

// Validator tags for task fields. Lengths are exclusive upper bounds.
var (
	titleTag       = fmt.Sprintf("required,max=%d", domain.TitleMaxLength-1)
	descriptionTag = fmt.Sprintf("required,max=%d", domain.DescriptionMaxLength-1)
	stateTag       = fmt.Sprintf("oneof=%s %s", domain.TaskStatePending, domain.TaskStateComplete)
)

// validString decodes raw as a string and checks it against tag.
func validString(raw json.RawMessage, tag string) (string, bool) {
	s, ok := shared.StringField(raw)
	if !ok {
		return "", false
	}
	if err := shared.ValidateVar(s, tag); err != nil {
		return "", false
	}
	return s, true
}

// parseCreateTask validates a create body. Title is checked before description;
// the first failure is returned as a ValidationError.
func parseCreateTask(body map[string]json.RawMessage) (domain.TaskDraft, error) {
	raw, ok := body["title"]
	if !ok {
		return domain.TaskDraft{}, domain.NewValidationError("title", "is required", domain.ErrValidation)
	}
	title, ok := validString(raw, titleTag)
	if !ok {
		return domain.TaskDraft{}, domain.NewValidationError("title", "is invalid", domain.ErrValidation)
	}

	raw, ok = body["description"]
	if !ok {
		return domain.TaskDraft{}, domain.NewValidationError("description", "is required", domain.ErrValidation)
	}
	description, ok := validString(raw, descriptionTag)
	if !ok {
		return domain.TaskDraft{}, domain.NewValidationError("description", "is invalid", domain.ErrValidation)
	}

	return domain.TaskDraft{Title: title, Description: description}, nil
}

// taskPatch holds the fields present in an update body.
type taskPatch struct {
	Title       *string
	Description *string
	State       *domain.TaskState
}

// empty reports whether no recognized field was present.
func (p taskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.State == nil
}

// apply returns a copy of task with the patch merged over it.
func (p taskPatch) apply(task *domain.Task) *domain.Task {
	merged := task.Clone()
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.State != nil {
		merged.State = *p.State
	}
	return merged
}

// parseTaskPatch validates the fields present in an update body in the order
// title, description, state. A field present with a null value is invalid.
func parseTaskPatch(body map[string]json.RawMessage) (taskPatch, error) {
	var patch taskPatch

	if raw, ok := body["title"]; ok {
		title, valid := validString(raw, titleTag)
		if !valid {
			return taskPatch{}, domain.NewValidationError("title", "is invalid", domain.ErrValidation)
		}
		patch.Title = &title
	}

	if raw, ok := body["description"]; ok {
		description, valid := validString(raw, descriptionTag)
		if !valid {
			return taskPatch{}, domain.NewValidationError("description", "is invalid", domain.ErrValidation)
		}
		patch.Description = &description
	}

	if raw, ok := body["state"]; ok {
		state, valid := validString(raw, stateTag)
		if !valid || !domain.TaskState(state).IsValid() {
			return taskPatch{}, domain.NewValidationError("state", "is invalid", domain.ErrInvalidTaskState)
		}
		s := domain.TaskState(state)
		patch.State = &s
	}

	return patch, nil
}

// createMessage returns the client message for a create validation failure.
func createMessage(field string) string {
	if field == "title" {
		return msgTitleRequired
	}
	return msgDescriptionRequired
}

// updateMessage returns the client message for an update validation failure.
func updateMessage(field string) string {
	switch field {
	case "title":
		return msgTitleInvalid
	case "description":
		return msgDescriptionInvalid
	default:
		return msgStateInvalid
	}
}
