package handlers

import (
	"fmt"

	"trilhas/models"
)

func bindError(err error) error {
	return fmt.Errorf("invalid request body: %w: %v", models.ErrValidation, err)
}
