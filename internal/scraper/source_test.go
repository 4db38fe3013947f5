package scraper

import (
	"errors"
	"testing"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain integer", raw: "45000", want: "45000"},
		{name: "ascii thousands separators", raw: "52,000,000", want: "52000000"},
		{name: "surrounding whitespace", raw: "  980,000 ", want: "980000"},
		{name: "decimal fraction", raw: "1,234.56", want: "1234.56"},
		{name: "persian digits", raw: "۴۵۰۰۰", want: "45000"},
		{name: "persian digits with arabic separator", raw: "۵۲٬۰۰۰", want: "52000"},
		{name: "arabic-indic digits", raw: "٤٥٠٠٠", want: "45000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "only separators", raw: ",,,", wantErr: true},
		{name: "letters", raw: "N/A", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-42", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePrice(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParsePrice(%q) = %s, expected error", tc.raw, got)
				}
				var dq *apperrors.DataQualityError
				if !errors.As(err, &dq) {
					t.Errorf("expected DataQualityError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrice(%q) failed: %v", tc.raw, err)
			}
			if got.String() != tc.want {
				t.Errorf("ParsePrice(%q) = %s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}
