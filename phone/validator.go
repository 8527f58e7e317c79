// Package phone turns user supplied telephone numbers into the canonical
// string used as a record key.
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalid is wrapped by every error returned from a Validator
var ErrInvalid = errors.New("value is not a valid phone number")

// Validator converts a raw phone number into its canonical form
type Validator interface {
	Validate(raw string) (string, error)
}

// RegionValidator accepts numbers belonging to a fixed set of regions and
// formats them as RFC 3966 URIs (tel:+7-999-999-99-99)
type RegionValidator struct {
	defaultRegion    string
	supportedRegions map[string]struct{}
	format           phonenumbers.PhoneNumberFormat
}

// RegionOptionFunc describes functions which tune a RegionValidator
type RegionOptionFunc func(v *RegionValidator)

// WithSupportedRegions replaces the accepted regions; default is the default region only
func WithSupportedRegions(regions ...string) RegionOptionFunc {
	return func(v *RegionValidator) {
		v.supportedRegions = make(map[string]struct{}, len(regions))
		for _, region := range regions {
			v.supportedRegions[strings.ToUpper(region)] = struct{}{}
		}
	}
}

// WithFormat selects the canonical output format; default is RFC 3966
func WithFormat(format phonenumbers.PhoneNumberFormat) RegionOptionFunc {
	return func(v *RegionValidator) {
		v.format = format
	}
}

// NewRegionValidator creates a validator that parses national numbers in defaultRegion
func NewRegionValidator(defaultRegion string, opts ...RegionOptionFunc) *RegionValidator {
	defaultRegion = strings.ToUpper(defaultRegion)
	v := &RegionValidator{
		defaultRegion:    defaultRegion,
		supportedRegions: map[string]struct{}{defaultRegion: {}},
		format:           phonenumbers.RFC3966,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// NewRussianValidator returns the validator used by the service: RU numbers only
func NewRussianValidator() *RegionValidator {
	return NewRegionValidator("RU")
}

// Validate parses raw and returns its canonical form
func (v *RegionValidator) Validate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalid
	}

	num, err := phonenumbers.Parse(raw, v.defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalid
	}

	region := phonenumbers.GetRegionCodeForNumber(num)
	if _, ok := v.supportedRegions[region]; !ok {
		return "", fmt.Errorf("%w: region %q is not supported", ErrInvalid, region)
	}

	return phonenumbers.Format(num, v.format), nil
}
