package service

import (
	"context"
	"errors"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

// storeError maps a repository failure on a single record to a domain error.
// Domain errors pass through unchanged.
func storeError(ctx context.Context, op, entity string, id int32, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFoundError(entity, id)
	}
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	if errors.As(err, &ve) || errors.As(err, &nf) {
		return err
	}
	logger.ErrorContext(ctx, "Store operation failed", "op", op, "entity", entity, "id", id, "error", err)
	return domain.NewStoreError(op, err)
}

// queryError wraps a failed read that is not addressed by id.
func queryError(ctx context.Context, op string, err error) error {
	var ve *domain.ValidationError
	var se *domain.StoreError
	if errors.As(err, &ve) || errors.As(err, &se) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logger.ErrorContext(ctx, "Store query failed", "op", op, "error", err)
	return domain.NewStoreError(op, err)
}
