package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"matchwell/internal/model"
	"matchwell/internal/repository"
)

var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyFeedback = errors.New("feedback message is empty")
)

// SubscribeService stores newsletter signups and page feedback.
type SubscribeService struct {
	subscribers repository.SubscriberRepo
	feedback    repository.FeedbackRepo
}

// NewSubscribeService creates a new subscribe service
func NewSubscribeService(subscribers repository.SubscriberRepo, feedback repository.FeedbackRepo) *SubscribeService {
	return &SubscribeService{
		subscribers: subscribers,
		feedback:    feedback,
	}
}

// Subscribe upserts a signup by email.
func (s *SubscribeService) Subscribe(ctx context.Context, email, source string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !plausibleEmail(email) {
		return ErrInvalidEmail
	}
	return s.subscribers.Upsert(ctx, &model.Subscriber{
		ID:     uuid.New().String(),
		Email:  email,
		Source: source,
	})
}

// SubmitFeedback stores a free-form note. Email is optional.
func (s *SubscribeService) SubmitFeedback(ctx context.Context, page, message, email string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyFeedback
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !plausibleEmail(email) {
		return ErrInvalidEmail
	}
	return s.feedback.Insert(ctx, &model.Feedback{
		ID:      uuid.New().String(),
		Page:    page,
		Message: message,
		Email:   email,
	})
}

// plausibleEmail is a shape check, not RFC validation — the mail
// provider has the final word.
func plausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}
