package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_NAME":       "resume-evaluator",
		"APP_ENV":        "test",
		"HTTP_PORT":      "8080",
		"ADMIN_USERNAME": "admin",
		"ADMIN_PASSWORD": "admin123",
		"SESSION_SECRET": "secret",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(baseEnv()))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Storage.Driver != StorageDriverLocal {
		t.Fatalf("expected local driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.UploadDir != "static/uploads" {
		t.Fatalf("unexpected upload dir %q", cfg.Storage.UploadDir)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "admin_session" {
		t.Fatalf("unexpected cookie name %q", cfg.Session.CookieName)
	}
	if !cfg.Database.RunMigrations {
		t.Fatalf("expected migrations enabled by default")
	}
	if cfg.App.UploadMaxBytes != 10<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.App.UploadMaxBytes)
	}
}

func TestFromEnv_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "SESSION_SECRET")
	delete(env, "ADMIN_PASSWORD")

	_, err := FromEnv(envFrom(env))
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, k := range []string{"SESSION_SECRET", "ADMIN_PASSWORD|ADMIN_PASSWORD_HASH"} {
		if !strings.Contains(err.Error(), k) {
			t.Fatalf("expected %s in error, got %v", k, err)
		}
	}
}

func TestFromEnv_PasswordHashOnly(t *testing.T) {
	env := baseEnv()
	delete(env, "ADMIN_PASSWORD")
	env["ADMIN_PASSWORD_HASH"] = "$2a$10$abcdefghijklmnopqrstuv"

	cfg, err := FromEnv(envFrom(env))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Admin.PasswordHash == "" {
		t.Fatalf("expected password hash to be kept")
	}
}

func TestFromEnv_S3RequiresBucket(t *testing.T) {
	env := baseEnv()
	env["STORAGE_DRIVER"] = "S3"

	_, err := FromEnv(envFrom(env))
	if err == nil || !strings.Contains(err.Error(), "S3_BUCKET") {
		t.Fatalf("expected S3_BUCKET error, got %v", err)
	}

	env["S3_BUCKET"] = "resumes"
	cfg, err := FromEnv(envFrom(env))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Storage.Driver != StorageDriverS3 {
		t.Fatalf("expected s3 driver, got %q", cfg.Storage.Driver)
	}
}

func TestFromEnv_UnknownDriver(t *testing.T) {
	env := baseEnv()
	env["STORAGE_DRIVER"] = "ftp"
	if _, err := FromEnv(envFrom(env)); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestDurationOr(t *testing.T) {
	cases := map[string]time.Duration{
		"":      time.Minute,
		"90":    90 * time.Second,
		"15m":   15 * time.Minute,
		"bogus": time.Minute,
		"-5":    time.Minute,
	}
	for raw, want := range cases {
		if got := durationOr(raw, time.Minute); got != want {
			t.Fatalf("durationOr(%q) = %s, want %s", raw, got, want)
		}
	}
}
