package share

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/brandkit/pkg/lifecycle"
	"github.com/JaimeStill/brandkit/pkg/mail"
)

// System queues brand summary emails.
type System interface {
	// Share validates req, renders the email, and queues it for delivery.
	Share(ctx context.Context, req Request) (*Receipt, error)
}

type service struct {
	mailer mail.Mailer
	lc     *lifecycle.Coordinator
	logger *slog.Logger
}

// New creates a share System. Delivery runs on lc's background context
// when lc is non-nil.
func New(mailer mail.Mailer, lc *lifecycle.Coordinator, logger *slog.Logger) System {
	return &service{
		mailer: mailer,
		lc:     lc,
		logger: logger.With("system", "share"),
	}
}

func (s *service) Share(ctx context.Context, req Request) (*Receipt, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := Render(req)
	if err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	msg := mail.Message{
		To:      []string{req.Email},
		Subject: Subject(req.BrandData),
		HTML:    body,
	}

	send := func(ctx context.Context) {
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error("send brand email failed", "email", req.Email, "error", err)
			return
		}
		s.logger.Info("brand email processed", "email", req.Email, "provider", s.mailer.Provider())
	}

	if s.lc != nil {
		s.lc.Background(send)
	} else {
		go send(context.WithoutCancel(ctx))
	}

	return &Receipt{
		Status:  StatusQueued,
		Message: fmt.Sprintf("Brand results will be sent to %s", req.Email),
		Email:   req.Email,
	}, nil
}
