package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchwell/internal/model"
)

type fakeSubscriberRepo struct {
	byEmail map[string]*model.Subscriber
}

func (f *fakeSubscriberRepo) Upsert(ctx context.Context, sub *model.Subscriber) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*model.Subscriber{}
	}
	f.byEmail[sub.Email] = sub
	return nil
}

func (f *fakeSubscriberRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.byEmail)), nil
}

type fakeFeedbackRepo struct {
	items []*model.Feedback
}

func (f *fakeFeedbackRepo) Insert(ctx context.Context, fb *model.Feedback) error {
	f.items = append(f.items, fb)
	return nil
}

func (f *fakeFeedbackRepo) ListRecent(ctx context.Context, limit int64) ([]model.Feedback, error) {
	return nil, nil
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	subs := &fakeSubscriberRepo{}
	svc := NewSubscribeService(subs, &fakeFeedbackRepo{})

	err := svc.Subscribe(context.Background(), "  Person@Example.COM ", "results_page")
	require.NoError(t, err)

	sub, ok := subs.byEmail["person@example.com"]
	require.True(t, ok)
	assert.Equal(t, "results_page", sub.Source)
}

func TestSubscribeRejectsBadEmails(t *testing.T) {
	svc := NewSubscribeService(&fakeSubscriberRepo{}, &fakeFeedbackRepo{})

	for _, email := range []string{"", "no-at-sign", "@example.com", "person@", "person@nodot", "two words@example.com"} {
		err := svc.Subscribe(context.Background(), email, "")
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestSubmitFeedback(t *testing.T) {
	fb := &fakeFeedbackRepo{}
	svc := NewSubscribeService(&fakeSubscriberRepo{}, fb)

	err := svc.SubmitFeedback(context.Background(), "/results", "  the reasons helped  ", "")
	require.NoError(t, err)
	require.Len(t, fb.items, 1)
	assert.Equal(t, "the reasons helped", fb.items[0].Message)
	assert.Empty(t, fb.items[0].Email)
}

func TestSubmitFeedbackRejectsEmptyMessage(t *testing.T) {
	svc := NewSubscribeService(&fakeSubscriberRepo{}, &fakeFeedbackRepo{})

	err := svc.SubmitFeedback(context.Background(), "/results", "   ", "")
	assert.ErrorIs(t, err, ErrEmptyFeedback)
}

func TestSubmitFeedbackValidatesOptionalEmail(t *testing.T) {
	svc := NewSubscribeService(&fakeSubscriberRepo{}, &fakeFeedbackRepo{})

	err := svc.SubmitFeedback(context.Background(), "/results", "note", "bad email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}
