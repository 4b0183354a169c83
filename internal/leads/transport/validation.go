package transport

import (
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/platform/validator"
)

// RegisterValidations adds the lead enum tags used by the request structs.
func RegisterValidations(v *validator.Validator) error {
	tags := map[string][]string{
		"leadstage":       domain.Strings(domain.Stages),
		"channel":         domain.Strings(domain.Channels),
		"segment":         domain.Strings(domain.Segments),
		"region":          domain.Strings(domain.Regions),
		"heating":         domain.Strings(domain.HeatingTypes),
		"intent":          domain.Strings(domain.IntentSignals),
		"interactiontype": domain.Strings(domain.InteractionTypes),
	}
	for tag, allowed := range tags {
		if err := v.RegisterOneOf(tag, allowed); err != nil {
			return err
		}
	}
	return nil
}
