// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/winspect/pkg/category"
	"github.com/mchmarny/winspect/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{
			name:       "valid json format",
			format:     "json",
			wantFormat: serializer.FormatJSON,
		},
		{
			name:       "valid yaml format",
			format:     "yaml",
			wantFormat: serializer.FormatYAML,
		},
		{
			name:       "valid table format",
			format:     "table",
			wantFormat: serializer.FormatTable,
		},
		{
			name:    "invalid format xml",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "empty format",
			format:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got serializer.Format
			var gotErr error
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, gotErr = parseOutputFormat(c)
					return nil
				},
			}
			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("command run: %v", err)
			}

			if tt.wantErr {
				if gotErr == nil {
					t.Fatalf("parseOutputFormat(%q) expected error, got %q", tt.format, got)
				}
				return
			}
			if gotErr != nil {
				t.Fatalf("parseOutputFormat(%q) unexpected error: %v", tt.format, gotErr)
			}
			if got != tt.wantFormat {
				t.Errorf("parseOutputFormat(%q) = %q, want %q", tt.format, got, tt.wantFormat)
			}
		})
	}
}

func TestParseFocus(t *testing.T) {
	got, err := parseFocus([]string{"Services", "drivers"})
	if err != nil {
		t.Fatalf("parseFocus: %v", err)
	}
	if len(got) != 2 || got[0] != category.Services || got[1] != category.Drivers {
		t.Errorf("parseFocus = %v, want [Services Drivers]", got)
	}

	if _, err := parseFocus([]string{"Bogus"}); err == nil {
		t.Error("parseFocus accepted unknown category")
	}

	got, err = parseFocus(nil)
	if err != nil || got != nil {
		t.Errorf("parseFocus(nil) = %v, %v, want nil, nil", got, err)
	}
}

func TestResolveSnapshot(t *testing.T) {
	root := t.TempDir()
	const id = "SystemState_20250601_120000_test"
	if err := os.MkdirAll(filepath.Join(root, id), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("bare id under dir", func(t *testing.T) {
		st, gotID, err := resolveSnapshot(id, root)
		if err != nil {
			t.Fatalf("resolveSnapshot: %v", err)
		}
		if gotID != id {
			t.Errorf("id = %q, want %q", gotID, id)
		}
		if st.Root() != root {
			t.Errorf("store root = %q, want %q", st.Root(), root)
		}
	})

	t.Run("directory path", func(t *testing.T) {
		st, gotID, err := resolveSnapshot(filepath.Join(root, id), "elsewhere")
		if err != nil {
			t.Fatalf("resolveSnapshot: %v", err)
		}
		if gotID != id {
			t.Errorf("id = %q, want %q", gotID, id)
		}
		if st == nil {
			t.Fatal("expected store")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, _, err := resolveSnapshot(filepath.Join(root, "SystemState_20990101_000000"), root)
		if err == nil {
			t.Error("expected error for missing snapshot directory")
		}
	})

	t.Run("malformed name", func(t *testing.T) {
		_, _, err := resolveSnapshot(filepath.Join(root, "not-a-snapshot"), root)
		if err == nil {
			t.Error("expected error for malformed snapshot name")
		}
	})

	t.Run("empty argument", func(t *testing.T) {
		_, _, err := resolveSnapshot("", root)
		if err == nil {
			t.Error("expected error for empty argument")
		}
	})
}
