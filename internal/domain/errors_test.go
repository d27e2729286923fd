package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

func TestValidationMessage(t *testing.T) {
	wrapped := fmt.Errorf("service.PlanService.Create: %w",
		fmt.Errorf("%w: destination is required", domain.ErrValidation))

	assert.Equal(t, "destination is required", domain.ValidationMessage(wrapped))
	assert.Equal(t, "boom", domain.ValidationMessage(errors.New("boom")))
	assert.Equal(t, "", domain.ValidationMessage(nil))
}
