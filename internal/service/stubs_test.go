package service

import (
	"context"
	"errors"
	"fmt"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/model"
)

type stubTemplateRepo struct {
	templates  map[string]*model.Template
	normalized map[string]model.Structure
	created    []*model.Template
	defaults   bool
}

func newStubTemplateRepo(templates ...model.Template) *stubTemplateRepo {
	r := &stubTemplateRepo{templates: map[string]*model.Template{}, normalized: map[string]model.Structure{}}
	for i := range templates {
		t := templates[i]
		r.templates[t.ID] = &t
	}
	return r
}

func (r *stubTemplateRepo) GetTemplates(ctx context.Context) ([]model.Template, error) {
	out := make([]model.Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTemplateRepo) GetTemplateByID(ctx context.Context, id string) (*model.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTemplateRepo) CreateTemplate(ctx context.Context, t *model.Template) error {
	if t.ID == "" {
		t.ID = fmt.Sprintf("tpl-%d", len(r.created)+1)
	}
	r.created = append(r.created, t)
	r.templates[t.ID] = t
	return nil
}

func (r *stubTemplateRepo) HasDefaultTemplates(ctx context.Context) (bool, error) {
	return r.defaults, nil
}

func (r *stubTemplateRepo) GetNormalizedStructure(ctx context.Context, templateID string) (model.Structure, error) {
	return r.normalized[templateID], nil
}

type stubEventRepo struct {
	events map[string]*model.Event
}

func newStubEventRepo(events ...model.Event) *stubEventRepo {
	r := &stubEventRepo{events: map[string]*model.Event{}}
	for i := range events {
		e := events[i]
		r.events[e.ID] = &e
	}
	return r
}

func (r *stubEventRepo) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubEventRepo) GetEvents(ctx context.Context, eventType string) ([]model.Event, error) {
	var out []model.Event
	for _, e := range r.events {
		if eventType == "" || e.Type == eventType {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEventRepo) CreateEvent(ctx context.Context, e *model.Event) error {
	if e.ID == "" {
		e.ID = fmt.Sprintf("evt-%d", len(r.events)+1)
	}
	r.events[e.ID] = e
	return nil
}

// stubFormRepo runs beforeUpdate ahead of the status check in UpdateStatus
// to stand in for a competing writer.
type stubFormRepo struct {
	forms        map[string]*model.Form
	created      []*model.Form
	createErr    error
	beforeUpdate func(f *model.Form)
}

func newStubFormRepo(forms ...model.Form) *stubFormRepo {
	r := &stubFormRepo{forms: map[string]*model.Form{}}
	for i := range forms {
		f := forms[i]
		r.forms[f.ID] = &f
	}
	return r
}

func (r *stubFormRepo) CreateForm(ctx context.Context, f *model.Form) error {
	if r.createErr != nil {
		return r.createErr
	}
	if f.ID == "" {
		f.ID = fmt.Sprintf("form-%d", len(r.created)+1)
	}
	r.created = append(r.created, f)
	r.forms[f.ID] = f
	return nil
}

func (r *stubFormRepo) GetForms(ctx context.Context, eventID string) ([]model.Form, error) {
	var out []model.Form
	for _, f := range r.forms {
		if eventID == "" || f.EventID == eventID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFormRepo) GetFormByID(ctx context.Context, id string) (*model.Form, error) {
	f, ok := r.forms[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *stubFormRepo) GetActiveFormsByEvent(ctx context.Context, eventID string) ([]model.Form, error) {
	var out []model.Form
	for _, f := range r.forms {
		if f.EventID == eventID && f.Status == model.FormStatusActive {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFormRepo) UpdateStatus(ctx context.Context, id, from, to string) (*model.Form, error) {
	f, ok := r.forms[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate(f)
	}
	if f.Status != from {
		return nil, db.ErrStale
	}
	f.Status = to
	cp := *f
	return &cp, nil
}

// stubResponseRepo fails the failOnAnswer-th SaveAnswer call when set.
type stubResponseRepo struct {
	responses        map[string]*model.Response
	answers          map[string]*model.QuestionResponse
	failOnAnswer     int
	saveCalls        int
	createErr        error
	deletedAnswers   []string
	deletedResponses []string
}

func newStubResponseRepo() *stubResponseRepo {
	return &stubResponseRepo{
		responses: map[string]*model.Response{},
		answers:   map[string]*model.QuestionResponse{},
	}
}

func (r *stubResponseRepo) CreateResponse(ctx context.Context, resp *model.Response) error {
	if r.createErr != nil {
		return r.createErr
	}
	resp.ID = fmt.Sprintf("resp-%d", len(r.responses)+1)
	r.responses[resp.ID] = resp
	return nil
}

func (r *stubResponseRepo) DeleteResponse(ctx context.Context, id string) error {
	if _, ok := r.responses[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.responses, id)
	r.deletedResponses = append(r.deletedResponses, id)
	return nil
}

func (r *stubResponseRepo) SaveAnswer(ctx context.Context, a *model.QuestionResponse) error {
	r.saveCalls++
	if r.failOnAnswer > 0 && r.saveCalls == r.failOnAnswer {
		return &db.StorageError{Op: "insert", Table: model.TableQuestionResponses, Err: errors.New("disk full")}
	}
	a.ID = fmt.Sprintf("ans-%d", r.saveCalls)
	cp := *a
	r.answers[a.ID] = &cp
	return nil
}

func (r *stubResponseRepo) DeleteAnswer(ctx context.Context, id string) error {
	if _, ok := r.answers[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.answers, id)
	r.deletedAnswers = append(r.deletedAnswers, id)
	return nil
}

func (r *stubResponseRepo) GetResponsesByForm(ctx context.Context, formID string) ([]model.Response, error) {
	var out []model.Response
	for _, resp := range r.responses {
		if resp.FormID != formID {
			continue
		}
		cp := *resp
		cp.Answers = nil
		for _, a := range r.answers {
			if a.ResponseID == resp.ID {
				cp.Answers = append(cp.Answers, *a)
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
