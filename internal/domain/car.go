package domain

import "time"

type Car struct {
	ID        int32     `json:"id"`
	Model     string    `json:"model"`
	CarNumber string    `json:"carNumber"`
	Run       string    `json:"run"`
	Owner     Owner     `json:"owner"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
