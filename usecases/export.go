package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"healthbridge/entities"
	"healthbridge/metrics"
	"healthbridge/repositories"
	"healthbridge/schemas"
	"healthbridge/services"

	"github.com/sirupsen/logrus"
)

// ExportUseCase builds the derived views of a user's record: the QR code
// and the AI summary.
type ExportUseCase struct {
	users      repositories.UserRepository
	encoder    services.QREncoder
	summarizer services.Summarizer
	timeout    time.Duration
	log        logrus.FieldLogger
}

// NewExportUseCase bounds each summarizer call by timeout; zero disables
// the bound.
func NewExportUseCase(users repositories.UserRepository, encoder services.QREncoder, summarizer services.Summarizer, timeout time.Duration, log logrus.FieldLogger) *ExportUseCase {
	return &ExportUseCase{
		users:      users,
		encoder:    encoder,
		summarizer: summarizer,
		timeout:    timeout,
		log:        log,
	}
}

func (uc *ExportUseCase) record(ctx context.Context, userID string) (*entities.User, error) {
	user, err := uc.users.GetRecord(ctx, userID)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

// UserQRCode returns a PNG QR code holding the user's record as JSON.
func (uc *ExportUseCase) UserQRCode(ctx context.Context, userID string) ([]byte, error) {
	user, err := uc.record(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	png, err := uc.encodeRecord(user)
	metrics.RecordExport("qrcode", time.Since(start), err == nil)
	if err != nil {
		uc.log.WithError(err).WithField("user_id", userID).Error("qr export failed")
		return nil, err
	}
	return png, nil
}

func (uc *ExportUseCase) encodeRecord(user *entities.User) ([]byte, error) {
	payload, err := json.Marshal(schemas.NewRecordPayload(user))
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return uc.encoder.PNG(string(payload))
}

// HealthSummary sends the user's summary prompt to the summarizer and
// returns its text unmodified.
func (uc *ExportUseCase) HealthSummary(ctx context.Context, userID string) (string, error) {
	user, err := uc.record(ctx, userID)
	if err != nil {
		return "", err
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	start := time.Now()
	summary, err := uc.summarizer.Summarize(ctx, BuildSummaryPrompt(user))
	elapsed := time.Since(start)
	metrics.RecordExport("summary", elapsed, err == nil)
	if err != nil {
		uc.log.WithError(err).WithField("user_id", userID).Error("summary generation failed")
		return "", fmt.Errorf("generate summary: %w", err)
	}

	uc.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"duration": elapsed.String(),
	}).Info("summary generated")
	return summary, nil
}
