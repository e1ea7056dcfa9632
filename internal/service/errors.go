package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/pocketbook/internal/backup"
	"github.com/mmynk/pocketbook/internal/budget"
	"github.com/mmynk/pocketbook/internal/health"
	"github.com/mmynk/pocketbook/internal/middleware"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
	"github.com/mmynk/pocketbook/internal/symptom"
)

var (
	errNoUser           = errors.New("no authenticated user")
	errRequest          = errors.New("invalid request")
	errCategoryNotFound = fmt.Errorf("category %w", storage.ErrNotFound)
)

// badRequest wraps a malformed-request error so it maps to InvalidArgument.
func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errRequest, fmt.Sprintf(format, args...))
}

// connectCode maps domain errors to Connect codes.
func connectCode(err error) connect.Code {
	switch {
	case errors.Is(err, errNoUser):
		return connect.CodeUnauthenticated
	case errors.Is(err, errRequest),
		errors.Is(err, budget.ErrInvalid),
		errors.Is(err, symptom.ErrInvalid),
		errors.Is(err, backup.ErrInvalid),
		errors.Is(err, health.ErrInvalid):
		return connect.CodeInvalidArgument
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// fail logs a failed RPC and converts err for the wire.
func fail(method string, err error, args ...any) error {
	code := connectCode(err)
	args = append(args, "code", code, "error", err)
	if code == connect.CodeInternal {
		slog.Error(method+" failed", args...)
	} else {
		slog.Warn(method+" failed", args...)
	}
	return connect.NewError(code, err)
}

func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", errNoUser
	}
	return userID, nil
}

// parseDate reads an optional "YYYY-MM-DD" field. Empty yields the zero Date.
func parseDate(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, badRequest("%v", err)
	}
	return d, nil
}
