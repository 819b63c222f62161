package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/utils"
)

type CreateEntryInput struct {
	Owner       domain.Owner        `json:"owner"`
	Comment     string              `json:"comment"`
	Amount      decimal.Decimal     `json:"amount"`
	PaymentType *domain.PaymentType `json:"paymentType"`
}

type UpdateEntryInput struct {
	Owner       *domain.Owner       `json:"owner"`
	Comment     *string             `json:"comment"`
	Amount      *decimal.Decimal    `json:"amount"`
	PaymentType *domain.PaymentType `json:"paymentType"`
}

type EntryPage struct {
	Items      []domain.Entry `json:"items"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
}

type entryService struct {
	repo repository.EntryRepository
	kind domain.EntryKind
}

func NewEntryService(repo repository.EntryRepository, kind domain.EntryKind) EntryService {
	return &entryService{repo: repo, kind: kind}
}

func (s *entryService) Create(ctx context.Context, in CreateEntryInput) (*domain.Entry, error) {
	logger.EnterMethod("entryService.Create", "kind", s.kind, "owner", in.Owner)

	e := &domain.Entry{
		Kind:        s.kind,
		Owner:       in.Owner,
		Comment:     strings.TrimSpace(in.Comment),
		Amount:      in.Amount,
		PaymentType: in.PaymentType,
	}
	if err := validateEntry(e); err != nil {
		logger.ExitMethodWithError("entryService.Create", err, "kind", s.kind)
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		err = queryError(ctx, "create "+string(s.kind), err)
		logger.ExitMethodWithError("entryService.Create", err, "kind", s.kind)
		return nil, err
	}

	logger.ExitMethod("entryService.Create", "kind", s.kind, "id", e.ID)
	return e, nil
}

func (s *entryService) Get(ctx context.Context, id int32) (*domain.Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(ctx, "get "+string(s.kind), string(s.kind), id, err)
	}
	return e, nil
}

func (s *entryService) Update(ctx context.Context, id int32, in UpdateEntryInput) (*domain.Entry, error) {
	logger.EnterMethod("entryService.Update", "kind", s.kind, "id", id)

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		err = storeError(ctx, "get "+string(s.kind), string(s.kind), id, err)
		logger.ExitMethodWithError("entryService.Update", err, "id", id)
		return nil, err
	}

	if in.Owner != nil {
		e.Owner = *in.Owner
	}
	if in.Comment != nil {
		e.Comment = strings.TrimSpace(*in.Comment)
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.PaymentType != nil {
		e.PaymentType = in.PaymentType
	}
	if err := validateEntry(e); err != nil {
		logger.ExitMethodWithError("entryService.Update", err, "id", id)
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		err = storeError(ctx, "update "+string(s.kind), string(s.kind), id, err)
		logger.ExitMethodWithError("entryService.Update", err, "id", id)
		return nil, err
	}

	logger.ExitMethod("entryService.Update", "kind", s.kind, "id", id)
	return e, nil
}

func (s *entryService) Delete(ctx context.Context, id int32) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(ctx, "delete "+string(s.kind), string(s.kind), id, err)
	}
	logger.InfoContext(ctx, "Ledger entry deleted", "kind", s.kind, "id", id)
	return nil
}

func (s *entryService) List(ctx context.Context, page, pageSize int) (*EntryPage, error) {
	p := utils.NormalizePage(page, pageSize)

	var (
		items []domain.Entry
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, repository.EntryQuery{Skip: p.Skip(), Take: p.Take()})
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, repository.EntryQuery{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, queryError(ctx, "list "+string(s.kind), err)
	}

	if items == nil {
		items = []domain.Entry{}
	}
	return &EntryPage{Items: items, Total: total, TotalPages: p.TotalPages(total)}, nil
}

func validateEntry(e *domain.Entry) error {
	if !e.Owner.Valid() {
		return domain.NewValidationError("owner", "owner must be ADMIN, INVESTOR or PARTNER")
	}
	if e.Amount.IsNegative() {
		return domain.NewValidationError("amount", "amount must not be negative")
	}
	if e.PaymentType != nil && !e.PaymentType.Valid() {
		return domain.NewValidationError("paymentType", "payment type must be CASH or CARD")
	}
	return nil
}
