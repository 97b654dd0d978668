package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/model"
)

var fixedNow = time.Date(2026, 3, 7, 18, 30, 0, 0, time.UTC)

func matchTemplate() model.Template {
	return model.Template{
		ID:          "tpl-1",
		Name:        "Post-Match Review",
		Description: "After the game",
		Structure: model.Structure{
			{Title: "Performance", Questions: []model.Question{
				{Type: model.QuestionTypeRating, Text: "How did you play?", Scale: intPtr(10)},
			}},
		},
	}
}

func cupFinal() model.Event {
	return model.Event{ID: "evt-1", Name: "Cup final", Type: "match", Date: fixedNow}
}

func newTestFormService(templates *stubTemplateRepo, events *stubEventRepo, forms *stubFormRepo) *formService {
	svc := NewFormService(forms, templates, events).(*formService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCreateForm_Defaults(t *testing.T) {
	templates := newStubTemplateRepo(matchTemplate())
	forms := newStubFormRepo()
	svc := newTestFormService(templates, newStubEventRepo(cupFinal()), forms)

	form, err := svc.CreateForm(context.Background(), CreateFormRequest{TemplateID: "tpl-1", EventID: "evt-1"})
	require.NoError(t, err)

	assert.Equal(t, "Post-Match Review - 3/7/2026", form.Name)
	assert.Equal(t, "After the game", form.Description)
	assert.Equal(t, model.FormStatusActive, form.Status)
	assert.True(t, form.AllowAnonymous)
	assert.Equal(t, "tpl-1", form.TemplateID)
	assert.Equal(t, "evt-1", form.EventID)
	assert.Equal(t, matchTemplate().Structure, form.Structure)
	assert.Len(t, forms.created, 1)
}

func TestCreateForm_StructureIsCopied(t *testing.T) {
	templates := newStubTemplateRepo(matchTemplate())
	svc := newTestFormService(templates, newStubEventRepo(cupFinal()), newStubFormRepo())

	form, err := svc.CreateForm(context.Background(), CreateFormRequest{TemplateID: "tpl-1", EventID: "evt-1"})
	require.NoError(t, err)

	form.Structure[0].Questions[0].Text = "edited"
	*form.Structure[0].Questions[0].Scale = 5
	assert.Equal(t, "How did you play?", templates.templates["tpl-1"].Structure[0].Questions[0].Text)
	assert.Equal(t, 10, *templates.templates["tpl-1"].Structure[0].Questions[0].Scale)
}

func TestCreateForm_TemplateNotFound(t *testing.T) {
	forms := newStubFormRepo()
	svc := newTestFormService(newStubTemplateRepo(), newStubEventRepo(cupFinal()), forms)

	_, err := svc.CreateForm(context.Background(), CreateFormRequest{TemplateID: "missing", EventID: "evt-1"})

	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Equal(t, "Template not found", err.Error())
	assert.Empty(t, forms.created)
}

func TestCreateForm_EventNotFound(t *testing.T) {
	forms := newStubFormRepo()
	svc := newTestFormService(newStubTemplateRepo(matchTemplate()), newStubEventRepo(), forms)

	_, err := svc.CreateForm(context.Background(), CreateFormRequest{TemplateID: "tpl-1", EventID: "missing"})

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Empty(t, forms.created)
}

func TestCreateForm_Customizations(t *testing.T) {
	svc := newTestFormService(newStubTemplateRepo(matchTemplate()), newStubEventRepo(cupFinal()), newStubFormRepo())
	name := "Keepers only"
	status := model.FormStatusDraft
	anon := false
	custom := model.Structure{{Title: "Goalkeeping", Questions: []model.Question{{Type: model.QuestionTypeYesNo, Text: "Clean sheet?"}}}}

	form, err := svc.CreateForm(context.Background(), CreateFormRequest{
		TemplateID: "tpl-1",
		EventID:    "evt-1",
		Customizations: &FormCustomizations{
			Name:           &name,
			Status:         &status,
			AllowAnonymous: &anon,
			StructureInput: model.FromSections(custom),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Keepers only", form.Name)
	assert.Equal(t, model.FormStatusDraft, form.Status)
	assert.False(t, form.AllowAnonymous)
	assert.Equal(t, custom, form.Structure)
}

func TestCreateForm_RejectsInvalidCustomStructure(t *testing.T) {
	forms := newStubFormRepo()
	svc := newTestFormService(newStubTemplateRepo(matchTemplate()), newStubEventRepo(cupFinal()), forms)
	custom := model.Structure{{Title: "Empty"}}

	_, err := svc.CreateForm(context.Background(), CreateFormRequest{
		TemplateID:     "tpl-1",
		EventID:        "evt-1",
		Customizations: &FormCustomizations{StructureInput: model.FromSections(custom)},
	})

	var structErr *StructureError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, []string{"Section 1 must have at least one question"}, structErr.Result.Errors)
	assert.Empty(t, forms.created)
}

func TestCreateForm_RejectsUnknownStatus(t *testing.T) {
	svc := newTestFormService(newStubTemplateRepo(matchTemplate()), newStubEventRepo(cupFinal()), newStubFormRepo())
	status := "archived"

	_, err := svc.CreateForm(context.Background(), CreateFormRequest{
		TemplateID:     "tpl-1",
		EventID:        "evt-1",
		Customizations: &FormCustomizations{Status: &status},
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateForm_FallsBackToNormalizedRows(t *testing.T) {
	tpl := matchTemplate()
	tpl.Structure = nil
	templates := newStubTemplateRepo(tpl)
	templates.normalized["tpl-1"] = matchTemplate().Structure
	svc := newTestFormService(templates, newStubEventRepo(cupFinal()), newStubFormRepo())

	form, err := svc.CreateForm(context.Background(), CreateFormRequest{TemplateID: "tpl-1", EventID: "evt-1"})
	require.NoError(t, err)
	assert.Equal(t, matchTemplate().Structure, form.Structure)
}

func TestCreateForm_StorageErrorPassesThrough(t *testing.T) {
	forms := newStubFormRepo()
	forms.createErr = &db.StorageError{Op: "insert", Table: model.TableForms, Err: errors.New("value too long")}
	svc := newTestFormService(newStubTemplateRepo(matchTemplate()), newStubEventRepo(cupFinal()), forms)

	_, err := svc.CreateForm(context.Background(), CreateFormRequest{TemplateID: "tpl-1", EventID: "evt-1"})

	var storageErr *db.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "value too long", err.Error())
}

func TestUpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{model.FormStatusDraft, model.FormStatusActive, true},
		{model.FormStatusDraft, model.FormStatusClosed, true},
		{model.FormStatusActive, model.FormStatusClosed, true},
		{model.FormStatusActive, model.FormStatusActive, true},
		{model.FormStatusActive, model.FormStatusDraft, false},
		{model.FormStatusClosed, model.FormStatusActive, false},
		{model.FormStatusClosed, model.FormStatusDraft, false},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			forms := newStubFormRepo(model.Form{ID: "f", Status: tc.from})
			svc := newTestFormService(newStubTemplateRepo(), newStubEventRepo(), forms)

			form, err := svc.UpdateStatus(context.Background(), "f", tc.to)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, form.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tc.from, forms.forms["f"].Status)
			}
		})
	}
}

func TestUpdateStatus_ConcurrentChangeIsRejected(t *testing.T) {
	forms := newStubFormRepo(model.Form{ID: "f", Status: model.FormStatusDraft})
	forms.beforeUpdate = func(f *model.Form) { f.Status = model.FormStatusClosed }
	svc := newTestFormService(newStubTemplateRepo(), newStubEventRepo(), forms)

	_, err := svc.UpdateStatus(context.Background(), "f", model.FormStatusActive)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.FormStatusClosed, forms.forms["f"].Status)
}

func TestGetForms_ListsSummaries(t *testing.T) {
	forms := newStubFormRepo(model.Form{
		ID:       "f",
		EventID:  "evt-1",
		Event:    &model.Event{ID: "evt-1", Name: "Cup final", Type: "match", Location: "Home"},
		Template: &model.Template{ID: "tpl-1", Name: "Review", Type: "match", Description: "long"},
	})
	svc := newTestFormService(newStubTemplateRepo(), newStubEventRepo(), forms)

	items, err := svc.GetForms(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, &model.EventSummary{ID: "evt-1", Name: "Cup final", Type: "match"}, items[0].Event)
	assert.Equal(t, &model.TemplateSummary{ID: "tpl-1", Name: "Review", Type: "match"}, items[0].Template)
	assert.Nil(t, items[0].Form.Event)
	assert.Nil(t, items[0].Form.Template)

	items, err = svc.GetForms(context.Background(), "evt-2")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestUpdateStatus_UnknownFormAndStatus(t *testing.T) {
	svc := newTestFormService(newStubTemplateRepo(), newStubEventRepo(), newStubFormRepo())

	_, err := svc.UpdateStatus(context.Background(), "missing", model.FormStatusClosed)
	assert.ErrorIs(t, err, ErrFormNotFound)

	_, err = svc.UpdateStatus(context.Background(), "missing", "paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
