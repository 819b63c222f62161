package service

import (
	"context"
	"strings"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type CreateCarInput struct {
	Model     string       `json:"model"`
	CarNumber string       `json:"carNumber"`
	Run       string       `json:"run"`
	Owner     domain.Owner `json:"owner"`
}

type UpdateCarInput struct {
	Model     *string       `json:"model"`
	CarNumber *string       `json:"carNumber"`
	Run       *string       `json:"run"`
	Owner     *domain.Owner `json:"owner"`
}

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func (s *carService) CreateCar(ctx context.Context, in CreateCarInput) (*domain.Car, error) {
	logger.EnterMethod("carService.CreateCar", "carNumber", in.CarNumber)

	car := &domain.Car{
		Model:     strings.TrimSpace(in.Model),
		CarNumber: strings.TrimSpace(in.CarNumber),
		Run:       strings.TrimSpace(in.Run),
		Owner:     in.Owner,
	}
	if err := validateCar(car); err != nil {
		logger.ExitMethodWithError("carService.CreateCar", err)
		return nil, err
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		err = queryError(ctx, "create car", err)
		logger.ExitMethodWithError("carService.CreateCar", err)
		return nil, err
	}

	logger.ExitMethod("carService.CreateCar", "carID", car.ID)
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(ctx, "get car", "car", id, err)
	}
	return car, nil
}

func (s *carService) UpdateCar(ctx context.Context, id int32, in UpdateCarInput) (*domain.Car, error) {
	logger.EnterMethod("carService.UpdateCar", "carID", id)

	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		err = storeError(ctx, "get car", "car", id, err)
		logger.ExitMethodWithError("carService.UpdateCar", err, "carID", id)
		return nil, err
	}

	if in.Model != nil {
		car.Model = strings.TrimSpace(*in.Model)
	}
	if in.CarNumber != nil {
		car.CarNumber = strings.TrimSpace(*in.CarNumber)
	}
	if in.Run != nil {
		car.Run = strings.TrimSpace(*in.Run)
	}
	if in.Owner != nil {
		car.Owner = *in.Owner
	}
	if err := validateCar(car); err != nil {
		logger.ExitMethodWithError("carService.UpdateCar", err, "carID", id)
		return nil, err
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		err = storeError(ctx, "update car", "car", id, err)
		logger.ExitMethodWithError("carService.UpdateCar", err, "carID", id)
		return nil, err
	}

	logger.ExitMethod("carService.UpdateCar", "carID", id)
	return car, nil
}

// RemoveCar is a soft delete; rents keep pointing at the car.
func (s *carService) RemoveCar(ctx context.Context, id int32) error {
	if err := s.carRepo.Deactivate(ctx, id); err != nil {
		return storeError(ctx, "remove car", "car", id, err)
	}
	logger.InfoContext(ctx, "Car deactivated", "carID", id)
	return nil
}

func (s *carService) ListCars(ctx context.Context) ([]domain.Car, error) {
	cars, err := s.carRepo.ListActive(ctx)
	if err != nil {
		return nil, queryError(ctx, "list cars", err)
	}
	return cars, nil
}

func (s *carService) ListFreeCars(ctx context.Context) ([]domain.Car, error) {
	cars, err := s.carRepo.ListFree(ctx)
	if err != nil {
		return nil, queryError(ctx, "list free cars", err)
	}
	return cars, nil
}

func validateCar(c *domain.Car) error {
	if c.Model == "" {
		return domain.NewValidationError("model", "model is required")
	}
	if c.CarNumber == "" {
		return domain.NewValidationError("carNumber", "car number is required")
	}
	if !c.Owner.Valid() {
		return domain.NewValidationError("owner", "owner must be ADMIN, INVESTOR or PARTNER")
	}
	return nil
}
