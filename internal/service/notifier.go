package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier simulates OTP delivery by logging the message a user would
// receive.
type LogNotifier struct {
	ttl    time.Duration
	logger *logger.Logger
}

func NewLogNotifier(ttl time.Duration, logger *logger.Logger) *LogNotifier {
	return &LogNotifier{ttl: ttl, logger: logger}
}

func (n *LogNotifier) Deliver(_ context.Context, entry model.OTPEntry) error {
	n.logger.Info("OTP delivery: message sent",
		"target", entry.Target,
		"purpose", entry.Purpose,
		"message", formatOTPMessage(entry.Purpose, entry.Code, n.ttl))
	return nil
}

func formatOTPMessage(purpose model.OTPPurpose, code string, ttl time.Duration) string {
	return fmt.Sprintf("Your OTP code for %s is %s. It is valid for %d minutes.",
		formatPurpose(purpose), code, int(ttl.Minutes()))
}

func formatPurpose(purpose model.OTPPurpose) string {
	p := strings.ReplaceAll(string(purpose), "_", " ")
	return cases.Title(language.English).String(p)
}
