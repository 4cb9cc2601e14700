package rules

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// policyRecord is the validated shape of one resource type policy
type policyRecord struct {
	ResourceType string `validate:"required,max=64,printascii"`
	Bucket       string `validate:"required,oneof=flat_before percentage flat_after"`
	Rounding     string `validate:"required,oneof=round_down round_up"`
}

var validate = validator.New()

func validatePolicy(p domain.ResourceTypePolicy) error {
	rec := policyRecord{
		ResourceType: string(p.ResourceType),
		Bucket:       p.DefaultBucket.String(),
		Rounding:     p.Rounding.String(),
	}
	if strings.ContainsAny(rec.ResourceType, " \t\r\n") {
		return fmt.Errorf("%w: resource type %q contains whitespace", domain.ErrInvalidPolicy, p.ResourceType)
	}
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidPolicy, p.ResourceType, err)
	}
	return nil
}
