package otp

import (
	"errors"
	"testing"
	"time"
)

const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ" // "12345678901234567890" in base32

func TestTOTPVectorsRFC6238(t *testing.T) {
	cfg := Config{Type: "totp", Secret: rfcSecret, Period: 30, Digits: 6, Algo: SHA1}

	cases := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1234567890, "005924"},
	}
	for _, c := range cases {
		got, err := generateCodeAt(cfg, time.Unix(c.unix, 0).UTC())
		if err != nil {
			t.Fatalf("unix=%d: %v", c.unix, err)
		}
		if got != c.want {
			t.Errorf("unix=%d: got %s, want %s", c.unix, got, c.want)
		}
	}
}

func TestParseOtpauthURI(t *testing.T) {
	uri := "otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&digits=8&period=60&algorithm=SHA256"
	cfg, err := ParseOTPInput(uri)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Type != "totp" || cfg.Secret != "JBSWY3DPEHPK3PXP" || cfg.Digits != 8 || cfg.Period != 60 || cfg.Algo != SHA256 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseBareSecretDefaults(t *testing.T) {
	cfg, err := ParseOTPInput(rfcSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Period != 30 || cfg.Digits != 6 || cfg.Algo != SHA1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseRejectsNonTotpKind(t *testing.T) {
	_, err := ParseOTPInput("otpauth://hotp/foo?secret=JBSWY3DPEHPK3PXP")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("got %v, want ErrParse", err)
	}
}

func TestParseRejectsBadBase32(t *testing.T) {
	_, err := ParseOTPInput("not-valid-base32!!!")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("got %v, want ErrParse", err)
	}
}

func TestGenerateRejectsBadDigitsAndAlgo(t *testing.T) {
	base := Config{Type: "totp", Secret: rfcSecret, Period: 30, Digits: 6, Algo: SHA1}

	bad := base
	bad.Digits = 9
	if _, err := GenerateCurrentCode(bad); !errors.Is(err, ErrRuntime) {
		t.Errorf("digits=9: got %v, want ErrRuntime", err)
	}

	bad = base
	bad.Algo = "MD5"
	if _, err := GenerateCurrentCode(bad); !errors.Is(err, ErrRuntime) {
		t.Errorf("algo=MD5: got %v, want ErrRuntime", err)
	}

	bad = base
	bad.Type = "hotp"
	if _, err := GenerateCurrentCode(bad); !errors.Is(err, ErrRuntime) {
		t.Errorf("type=hotp: got %v, want ErrRuntime", err)
	}
}

func TestGenerateAcceptsShortSecret(t *testing.T) {
	// 80-bit secret, well short of RFC's "minimum recommended" but must
	// still be accepted.
	cfg := Config{Type: "totp", Secret: "JBSWY3DPEHPK3PXP", Period: 30, Digits: 6, Algo: SHA1}
	if _, err := GenerateCurrentCode(cfg); err != nil {
		t.Fatalf("short secret rejected: %v", err)
	}
}
