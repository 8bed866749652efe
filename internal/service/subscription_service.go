package service

import (
	"context"
	"net/mail"
	"strings"

	"delit-api/internal/apperror"
	"delit-api/internal/models"
	"delit-api/internal/repository"
)

// SubscriptionService maintains the mailing list.
type SubscriptionService struct {
	subscribers repository.DocumentStore[models.Subscriber]
	audit       repository.AuditStore
}

func NewSubscriptionService(subscribers repository.DocumentStore[models.Subscriber], audit repository.AuditStore) *SubscriptionService {
	return &SubscriptionService{subscribers: subscribers, audit: audit}
}

// Subscribe adds mailID to the list. It reports false when the address was
// already subscribed.
func (s *SubscriptionService) Subscribe(ctx context.Context, mailID string) (*models.Subscriber, bool, error) {
	address, err := normalizeMail(mailID)
	if err != nil {
		return nil, false, err
	}

	subscriber := &models.Subscriber{
		ID:     models.NewObjectID(),
		MailID: address,
	}
	if err := s.subscribers.Insert(ctx, subscriber); err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			existing, findErr := s.subscribers.FindBy(ctx, "mail_id", address)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return subscriber, true, nil
}

func (s *SubscriptionService) List(ctx context.Context) ([]models.Subscriber, error) {
	return s.subscribers.FindAll(ctx, newestFirst)
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, mailID string) error {
	address, err := normalizeMail(mailID)
	if err != nil {
		return err
	}
	subscriber, err := s.subscribers.FindBy(ctx, "mail_id", address)
	if err != nil {
		return err
	}
	if _, err := s.subscribers.Delete(ctx, subscriber.ID); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, "subscriber_removed", address+" unsubscribed")
	return nil
}

func normalizeMail(mailID string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(mailID))
	if err != nil || addr.Name != "" {
		return "", apperror.Validation("invalid mail id")
	}
	return strings.ToLower(addr.Address), nil
}
