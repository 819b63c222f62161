package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/events"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/revenue"
	"fleetrent-backend/internal/utils"
)

type CreateRentInput struct {
	Name                  string             `json:"name"`
	PhoneNumber           string             `json:"phoneNumber"`
	StartDate             time.Time          `json:"startDate"`
	EndDate               time.Time          `json:"endDate"`
	Status                domain.RentStatus  `json:"status"`
	GuaranteeType         domain.PaymentType `json:"guaranteeType"`
	GuaranteeAmount       decimal.Decimal    `json:"guaranteeAmount"`
	IsGuaranteeReturned   bool               `json:"isGuaranteeReturned"`
	Amount                decimal.Decimal    `json:"amount"`
	AmountPaid            decimal.Decimal    `json:"amountPaid"`
	PaymentType           domain.PaymentType `json:"paymentType"`
	AmountPaidPaymentType domain.PaymentType `json:"amountPaidPaymentType"`
	IncomeSplit           domain.IncomeSplit `json:"incomePersentage"`
	CarID                 *int32             `json:"carId"`
}

// UpdateRentInput is a partial update; nil fields keep their stored value.
type UpdateRentInput struct {
	Name                  *string             `json:"name"`
	PhoneNumber           *string             `json:"phoneNumber"`
	StartDate             *time.Time          `json:"startDate"`
	EndDate               *time.Time          `json:"endDate"`
	Status                *domain.RentStatus  `json:"status"`
	GuaranteeType         *domain.PaymentType `json:"guaranteeType"`
	GuaranteeAmount       *decimal.Decimal    `json:"guaranteeAmount"`
	IsGuaranteeReturned   *bool               `json:"isGuaranteeReturned"`
	Amount                *decimal.Decimal    `json:"amount"`
	AmountPaid            *decimal.Decimal    `json:"amountPaid"`
	PaymentType           *domain.PaymentType `json:"paymentType"`
	AmountPaidPaymentType *domain.PaymentType `json:"amountPaidPaymentType"`
	IncomeSplit           *domain.IncomeSplit `json:"incomePersentage"`
	CarID                 *int32              `json:"carId"`
}

// CreateExtensionInput leaves StartDate and EndDate optional: the extension
// then starts where the rent currently ends and lasts ExtendedDaysQuantity days.
type CreateExtensionInput struct {
	ExtendedDaysQuantity  int32              `json:"extendedDaysQuantity"`
	StartDate             *time.Time         `json:"startDate"`
	EndDate               *time.Time         `json:"endDate"`
	Status                domain.RentStatus  `json:"status"`
	Amount                decimal.Decimal    `json:"amount"`
	AmountPaid            decimal.Decimal    `json:"amountPaid"`
	PaymentType           domain.PaymentType `json:"paymentType"`
	AmountPaidPaymentType domain.PaymentType `json:"amountPaidPaymentType"`
}

type UpdateExtensionInput struct {
	ExtendedDaysQuantity  *int32              `json:"extendedDaysQuantity"`
	StartDate             *time.Time          `json:"startDate"`
	EndDate               *time.Time          `json:"endDate"`
	Status                *domain.RentStatus  `json:"status"`
	Amount                *decimal.Decimal    `json:"amount"`
	AmountPaid            *decimal.Decimal    `json:"amountPaid"`
	PaymentType           *domain.PaymentType `json:"paymentType"`
	AmountPaidPaymentType *domain.PaymentType `json:"amountPaidPaymentType"`
}

type rentService struct {
	rentRepo  repository.RentRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewRentService(rentRepo repository.RentRepository, publisher events.Publisher) RentService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &rentService{
		rentRepo:  rentRepo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *rentService) CreateRent(ctx context.Context, in CreateRentInput) (*domain.Rent, error) {
	logger.EnterMethod("rentService.CreateRent", "name", in.Name)

	rent := &domain.Rent{
		Name:                  strings.TrimSpace(in.Name),
		PhoneNumber:           strings.TrimSpace(in.PhoneNumber),
		StartDate:             in.StartDate.UTC(),
		EndDate:               in.EndDate.UTC(),
		InitialEndDate:        in.EndDate.UTC(),
		Status:                in.Status,
		GuaranteeType:         in.GuaranteeType,
		GuaranteeAmount:       in.GuaranteeAmount,
		IsGuaranteeReturned:   in.IsGuaranteeReturned,
		Amount:                in.Amount,
		AmountPaid:            in.AmountPaid,
		PaymentType:           in.PaymentType,
		AmountPaidPaymentType: in.AmountPaidPaymentType,
		IncomeSplit:           in.IncomeSplit,
		CarID:                 in.CarID,
	}
	if err := validateRent(rent); err != nil {
		logger.ExitMethodWithError("rentService.CreateRent", err)
		return nil, err
	}
	revenue.ApplySplit(rent)

	if err := s.rentRepo.Create(ctx, rent); err != nil {
		err = queryError(ctx, "create rent", err)
		logger.ExitMethodWithError("rentService.CreateRent", err)
		return nil, err
	}

	s.publish(ctx, events.RentCreated, rent, 0)
	logger.ExitMethod("rentService.CreateRent", "rentID", rent.ID)
	return rent, nil
}

func (s *rentService) UpdateRent(ctx context.Context, id int32, in UpdateRentInput) (*domain.Rent, error) {
	logger.EnterMethod("rentService.UpdateRent", "rentID", id)

	rent, err := s.rentRepo.GetByID(ctx, id)
	if err != nil {
		err = storeError(ctx, "get rent", "rent", id, err)
		logger.ExitMethodWithError("rentService.UpdateRent", err, "rentID", id)
		return nil, err
	}

	if in.EndDate != nil && rent.IsRentExtended && !in.EndDate.Equal(rent.EndDate) {
		err := domain.NewValidationError("endDate", "end date of an extended rent follows its extensions")
		logger.ExitMethodWithError("rentService.UpdateRent", err, "rentID", id)
		return nil, err
	}

	if in.Name != nil {
		rent.Name = strings.TrimSpace(*in.Name)
	}
	if in.PhoneNumber != nil {
		rent.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.StartDate != nil {
		rent.StartDate = in.StartDate.UTC()
	}
	if in.EndDate != nil {
		rent.EndDate = in.EndDate.UTC()
	}
	if in.Status != nil {
		rent.Status = *in.Status
	}
	if in.GuaranteeType != nil {
		rent.GuaranteeType = *in.GuaranteeType
	}
	if in.GuaranteeAmount != nil {
		rent.GuaranteeAmount = *in.GuaranteeAmount
	}
	if in.IsGuaranteeReturned != nil {
		rent.IsGuaranteeReturned = *in.IsGuaranteeReturned
	}
	if in.Amount != nil {
		rent.Amount = *in.Amount
	}
	if in.AmountPaid != nil {
		rent.AmountPaid = *in.AmountPaid
	}
	if in.PaymentType != nil {
		rent.PaymentType = *in.PaymentType
	}
	if in.AmountPaidPaymentType != nil {
		rent.AmountPaidPaymentType = *in.AmountPaidPaymentType
	}
	if in.IncomeSplit != nil {
		rent.IncomeSplit = *in.IncomeSplit
	}
	if in.CarID != nil {
		rent.CarID = in.CarID
	}

	if err := validateRent(rent); err != nil {
		logger.ExitMethodWithError("rentService.UpdateRent", err, "rentID", id)
		return nil, err
	}
	// incomes are re-derived on every update
	revenue.ApplySplit(rent)

	if err := s.rentRepo.Update(ctx, rent); err != nil {
		err = storeError(ctx, "update rent", "rent", id, err)
		logger.ExitMethodWithError("rentService.UpdateRent", err, "rentID", id)
		return nil, err
	}

	s.publish(ctx, events.RentUpdated, rent, 0)
	logger.ExitMethod("rentService.UpdateRent", "rentID", id)
	return rent, nil
}

func (s *rentService) RemoveRent(ctx context.Context, id int32) error {
	logger.EnterMethod("rentService.RemoveRent", "rentID", id)

	if err := s.rentRepo.Delete(ctx, id); err != nil {
		err = storeError(ctx, "remove rent", "rent", id, err)
		logger.ExitMethodWithError("rentService.RemoveRent", err, "rentID", id)
		return err
	}

	s.emit(ctx, events.Event{Type: events.RentRemoved, RentID: id})
	logger.ExitMethod("rentService.RemoveRent", "rentID", id)
	return nil
}

func (s *rentService) GetRent(ctx context.Context, id int32) (*domain.Rent, error) {
	rent, err := s.rentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(ctx, "get rent", "rent", id, err)
	}
	return rent, nil
}

func (s *rentService) ListRents(ctx context.Context, filter domain.RentFilter) ([]domain.Rent, error) {
	rents, err := s.rentRepo.List(ctx, filter)
	if err != nil {
		return nil, queryError(ctx, "list rents", err)
	}
	return rents, nil
}

func (s *rentService) ListRentsPage(ctx context.Context, take, skip int) ([]domain.Rent, error) {
	if take < 1 {
		return nil, domain.NewValidationError("take", "take must be positive")
	}
	if skip < 0 {
		return nil, domain.NewValidationError("skip", "skip must not be negative")
	}
	rents, err := s.rentRepo.ListPage(ctx, take, skip)
	if err != nil {
		return nil, queryError(ctx, "list rents page", err)
	}
	return rents, nil
}

func (s *rentService) SearchRents(ctx context.Context, query string) ([]domain.Rent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Rent{}, nil
	}
	rents, err := s.rentRepo.Search(ctx, query)
	if err != nil {
		return nil, queryError(ctx, "search rents", err)
	}
	return rents, nil
}

func (s *rentService) CreateExtension(ctx context.Context, rentID int32, in CreateExtensionInput) (*domain.RentExtension, error) {
	logger.EnterMethod("rentService.CreateExtension", "rentID", rentID, "days", in.ExtendedDaysQuantity)

	if in.ExtendedDaysQuantity <= 0 {
		err := domain.NewValidationError("extendedDaysQuantity", "extended days quantity must be positive")
		logger.ExitMethodWithError("rentService.CreateExtension", err, "rentID", rentID)
		return nil, err
	}

	rent, err := s.rentRepo.GetByID(ctx, rentID)
	if err != nil {
		err = storeError(ctx, "get rent", "rent", rentID, err)
		logger.ExitMethodWithError("rentService.CreateExtension", err, "rentID", rentID)
		return nil, err
	}

	start := rent.EndDate
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}
	end := utils.AddDays(start, in.ExtendedDaysQuantity)
	if in.EndDate != nil {
		end = in.EndDate.UTC()
	}

	ext := &domain.RentExtension{
		RentID:                rentID,
		ExtendedDaysQuantity:  in.ExtendedDaysQuantity,
		StartDate:             start,
		EndDate:               end,
		Status:                in.Status,
		Amount:                in.Amount,
		AmountPaid:            in.AmountPaid,
		PaymentType:           in.PaymentType,
		AmountPaidPaymentType: in.AmountPaidPaymentType,
	}
	if err := validateExtension(ext); err != nil {
		logger.ExitMethodWithError("rentService.CreateExtension", err, "rentID", rentID)
		return nil, err
	}

	parent, err := s.rentRepo.CreateExtension(ctx, ext)
	if err != nil {
		err = storeError(ctx, "create extension", "rent", rentID, err)
		logger.ExitMethodWithError("rentService.CreateExtension", err, "rentID", rentID)
		return nil, err
	}

	s.publish(ctx, events.ExtensionCreated, parent, ext.ID)
	logger.ExitMethod("rentService.CreateExtension", "extensionID", ext.ID, "endDate", parent.EndDate)
	return ext, nil
}

func (s *rentService) GetExtension(ctx context.Context, id int32) (*domain.RentExtension, error) {
	ext, err := s.rentRepo.GetExtension(ctx, id)
	if err != nil {
		return nil, storeError(ctx, "get extension", "extension", id, err)
	}
	return ext, nil
}

func (s *rentService) UpdateExtension(ctx context.Context, id int32, in UpdateExtensionInput) (*domain.RentExtension, error) {
	logger.EnterMethod("rentService.UpdateExtension", "extensionID", id)

	if in.ExtendedDaysQuantity != nil && *in.ExtendedDaysQuantity <= 0 {
		err := domain.NewValidationError("extendedDaysQuantity", "extended days quantity must be positive")
		logger.ExitMethodWithError("rentService.UpdateExtension", err, "extensionID", id)
		return nil, err
	}

	ext, err := s.rentRepo.GetExtension(ctx, id)
	if err != nil {
		err = storeError(ctx, "get extension", "extension", id, err)
		logger.ExitMethodWithError("rentService.UpdateExtension", err, "extensionID", id)
		return nil, err
	}

	if in.StartDate != nil {
		ext.StartDate = in.StartDate.UTC()
	}
	if in.ExtendedDaysQuantity != nil {
		ext.ExtendedDaysQuantity = *in.ExtendedDaysQuantity
	}
	switch {
	case in.EndDate != nil:
		ext.EndDate = in.EndDate.UTC()
	case in.ExtendedDaysQuantity != nil || in.StartDate != nil:
		ext.EndDate = utils.AddDays(ext.StartDate, ext.ExtendedDaysQuantity)
	}
	if in.Status != nil {
		ext.Status = *in.Status
	}
	if in.Amount != nil {
		ext.Amount = *in.Amount
	}
	if in.AmountPaid != nil {
		ext.AmountPaid = *in.AmountPaid
	}
	if in.PaymentType != nil {
		ext.PaymentType = *in.PaymentType
	}
	if in.AmountPaidPaymentType != nil {
		ext.AmountPaidPaymentType = *in.AmountPaidPaymentType
	}

	if err := validateExtension(ext); err != nil {
		logger.ExitMethodWithError("rentService.UpdateExtension", err, "extensionID", id)
		return nil, err
	}

	parent, err := s.rentRepo.UpdateExtension(ctx, ext)
	if err != nil {
		err = storeError(ctx, "update extension", "extension", id, err)
		logger.ExitMethodWithError("rentService.UpdateExtension", err, "extensionID", id)
		return nil, err
	}

	s.publish(ctx, events.ExtensionUpdated, parent, id)
	logger.ExitMethod("rentService.UpdateExtension", "extensionID", id, "endDate", parent.EndDate)
	return ext, nil
}

func (s *rentService) DeleteExtension(ctx context.Context, id int32) (*domain.RentExtension, error) {
	logger.EnterMethod("rentService.DeleteExtension", "extensionID", id)

	ext, parent, err := s.rentRepo.DeleteExtension(ctx, id)
	if err != nil {
		err = storeError(ctx, "delete extension", "extension", id, err)
		logger.ExitMethodWithError("rentService.DeleteExtension", err, "extensionID", id)
		return nil, err
	}

	s.publish(ctx, events.ExtensionDeleted, parent, id)
	logger.ExitMethod("rentService.DeleteExtension", "extensionID", id, "extended", parent.IsRentExtended)
	return ext, nil
}

func (s *rentService) publish(ctx context.Context, typ events.Type, rent *domain.Rent, extensionID int32) {
	end := rent.EndDate
	s.emit(ctx, events.Event{
		Type:           typ,
		RentID:         rent.ID,
		ExtensionID:    extensionID,
		EndDate:        &end,
		IsRentExtended: rent.IsRentExtended,
	})
}

// emit runs after the write committed, so a failed publish is only logged.
func (s *rentService) emit(ctx context.Context, ev events.Event) {
	ev.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logger.WarnContext(ctx, "Failed to publish rent event", "type", ev.Type, "rentID", ev.RentID, "error", err)
	}
}

func validateRent(r *domain.Rent) error {
	if r.Name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return domain.NewValidationError("startDate", "start and end dates are required")
	}
	if r.EndDate.Before(r.StartDate) {
		return domain.NewValidationError("endDate", "end date is before start date")
	}
	if !r.Status.Valid() {
		return domain.NewValidationError("status", "unknown rent status "+string(r.Status))
	}
	if err := validatePaymentTypes(map[string]domain.PaymentType{
		"guaranteeType":         r.GuaranteeType,
		"paymentType":           r.PaymentType,
		"amountPaidPaymentType": r.AmountPaidPaymentType,
	}); err != nil {
		return err
	}
	if err := validateAmounts(map[string]decimal.Decimal{
		"guaranteeAmount": r.GuaranteeAmount,
		"amount":          r.Amount,
		"amountPaid":      r.AmountPaid,
	}); err != nil {
		return err
	}
	return revenue.ValidateSplit(r.IncomeSplit)
}

func validateExtension(e *domain.RentExtension) error {
	if e.EndDate.Before(e.StartDate) {
		return domain.NewValidationError("endDate", "end date is before start date")
	}
	if !e.Status.ValidForExtension() {
		return domain.NewValidationError("status", "unknown extension status "+string(e.Status))
	}
	if err := validatePaymentTypes(map[string]domain.PaymentType{
		"paymentType":           e.PaymentType,
		"amountPaidPaymentType": e.AmountPaidPaymentType,
	}); err != nil {
		return err
	}
	return validateAmounts(map[string]decimal.Decimal{
		"amount":     e.Amount,
		"amountPaid": e.AmountPaid,
	})
}

func validatePaymentTypes(fields map[string]domain.PaymentType) error {
	for field, p := range fields {
		if !p.Valid() {
			return domain.NewValidationError(field, "payment type must be CASH or CARD")
		}
	}
	return nil
}

func validateAmounts(fields map[string]decimal.Decimal) error {
	for field, v := range fields {
		if v.IsNegative() {
			return domain.NewValidationError(field, "amount must not be negative")
		}
	}
	return nil
}
