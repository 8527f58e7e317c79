package phone

import (
	"errors"
	"testing"

	"github.com/nyaruka/phonenumbers"
	"pgregory.net/rapid"
)

func TestRussianValidator(t *testing.T) {
	v := NewRussianValidator()

	cases := []struct {
		raw         string
		want        string
		error       bool
		description string
	}{
		{
			raw:         "+79999999999",
			want:        "tel:+7-999-999-99-99",
			description: "Should accept E.164",
		},
		{
			raw:         "tel:+7-999-999-99-99",
			want:        "tel:+7-999-999-99-99",
			description: "Should accept the canonical form",
		},
		{
			raw:         "8 (999) 999-99-99",
			want:        "tel:+7-999-999-99-99",
			description: "Should accept a national number with trunk prefix",
		},
		{
			raw:         "  +7 912 345 67 89 ",
			want:        "tel:+7-912-345-67-89",
			description: "Should trim surrounding space",
		},
		{
			raw:         "12345",
			error:       true,
			description: "Should reject a short number",
		},
		{
			raw:         "",
			error:       true,
			description: "Should reject an empty value",
		},
		{
			raw:         "not a phone",
			error:       true,
			description: "Should reject text",
		},
		{
			raw:         "+77012345678",
			error:       true,
			description: "Should reject a Kazakh number sharing the +7 country code",
		},
		{
			raw:         "+442071838750",
			error:       true,
			description: "Should reject a number from another country",
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			got, err := v.Validate(c.raw)
			if c.error {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("Validate(%q) error = %v, want ErrInvalid", c.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) unexpected error: %v", c.raw, err)
			}
			if got != c.want {
				t.Errorf("Validate(%q) = %q, want %q", c.raw, got, c.want)
			}
		})
	}
}

func TestRegionValidatorOptions(t *testing.T) {
	v := NewRegionValidator("ru", WithSupportedRegions("ru", "kz"), WithFormat(phonenumbers.E164))

	got, err := v.Validate("+77012345678")
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if got != "+77012345678" {
		t.Errorf("Validate() = %q, want %q", got, "+77012345678")
	}
}

func TestCanonicalFormIsStable(t *testing.T) {
	v := NewRussianValidator()

	rapid.Check(t, func(rt *rapid.T) {
		subscriber := rapid.StringMatching(`[0-9]{9}`).Draw(rt, "subscriber")

		international, err := v.Validate("+79" + subscriber)
		if err != nil {
			rt.Fatalf("Validate(+79%s) unexpected error: %v", subscriber, err)
		}
		national, err := v.Validate("89" + subscriber)
		if err != nil {
			rt.Fatalf("Validate(89%s) unexpected error: %v", subscriber, err)
		}
		if international != national {
			rt.Fatalf("international %q and national %q forms differ", international, national)
		}

		again, err := v.Validate(international)
		if err != nil {
			rt.Fatalf("Validate(%q) unexpected error: %v", international, err)
		}
		if again != international {
			rt.Fatalf("canonical form is not a fixed point: %q -> %q", international, again)
		}
	})
}

func TestShortDigitStringsAreRejected(t *testing.T) {
	v := NewRussianValidator()

	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.StringMatching(`[0-9]{1,5}`).Draw(rt, "raw")
		if _, err := v.Validate(raw); !errors.Is(err, ErrInvalid) {
			rt.Fatalf("Validate(%q) error = %v, want ErrInvalid", raw, err)
		}
	})
}
