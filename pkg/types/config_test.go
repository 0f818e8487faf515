package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{DataDir: "/tmp/rpncalc"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "bolt", DataDir: "/tmp/rpncalc"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "sqlite with data dir",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/rpncalc"},
		},
		{
			name:   "sqlite without data dir",
			config: Config{Backend: BackendSQLite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
