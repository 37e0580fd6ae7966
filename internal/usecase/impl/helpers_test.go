package impl

import (
	"io"
	"log/slog"
	"time"

	"loginflow/internal/domain/entity"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func pendingProfile(id, email, hash string, expiresAt *time.Time) *entity.Profile {
	return &entity.Profile{
		ID:                    id,
		Email:                 email,
		RequiresPasswordReset: true,
		TemporaryPasswordHash: &hash,
		TempPasswordExpiresAt: expiresAt,
	}
}
