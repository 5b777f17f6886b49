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

package snapshot

import (
	"strings"
	"testing"
	"time"

	"github.com/mchmarny/winspect/pkg/category"
)

func TestIDRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name        string
		description string
		wantID      string
		wantDesc    string
	}{
		{
			name:   "no description",
			wantID: "SystemState_20260830_150405",
		},
		{
			name:        "simple description",
			description: "baseline",
			wantID:      "SystemState_20260830_150405_baseline",
			wantDesc:    "baseline",
		},
		{
			name:        "description with spaces",
			description: "after update",
			wantID:      "SystemState_20260830_150405_after-update",
			wantDesc:    "after-update",
		},
		{
			name:        "unsafe characters stripped",
			description: "a/b\\c:d",
			wantID:      "SystemState_20260830_150405_abcd",
			wantDesc:    "abcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewID(created, tt.description)
			if id != tt.wantID {
				t.Fatalf("NewID = %q, want %q", id, tt.wantID)
			}

			gotTime, gotDesc, ok := ParseID(id)
			if !ok {
				t.Fatalf("ParseID(%q) failed", id)
			}
			if !gotTime.Equal(created) {
				t.Errorf("ParseID time = %v, want %v", gotTime, created)
			}
			if gotDesc != tt.wantDesc {
				t.Errorf("ParseID description = %q, want %q", gotDesc, tt.wantDesc)
			}
		})
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"SystemState_20260830_150405", true},
		{"SystemState_20260830_150405_baseline", true},
		{"SystemState_20260830", false},
		{"../../etc/passwd", false},
		{"SystemState_20260830_150405/..", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestDocumentHelpers(t *testing.T) {
	list, err := NewDocument(category.Services, []byte(`[{"Name":"Spooler"},{"Name":"BITS"}]`))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if list.Count() != 2 {
		t.Errorf("Count = %d, want 2", list.Count())
	}
	if len(list.Items()) != 2 {
		t.Errorf("Items length = %d, want 2", len(list.Items()))
	}

	obj, err := NewDocument(category.Network, []byte(`{"adapters":[],"dns":{"servers":["1.1.1.1"]}}`))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if obj.Object() == nil {
		t.Fatal("expected object value")
	}
	if obj.Count() != 2 {
		t.Errorf("Count = %d, want 2", obj.Count())
	}
	// Objects iterate as a single item.
	if len(obj.Items()) != 1 {
		t.Errorf("Items length = %d, want 1", len(obj.Items()))
	}
}

func TestUnavailable(t *testing.T) {
	d := Unavailable(category.Drivers, "access denied")

	if !d.IsUnavailable() {
		t.Error("expected IsUnavailable to be true")
	}
	want := "Unable to collect Drivers: access denied"
	if d.Value != want {
		t.Errorf("Value = %q, want %q", d.Value, want)
	}

	ok, err := NewDocument(category.Drivers, []byte(`[{"Name":"disk.sys"}]`))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if ok.IsUnavailable() {
		t.Error("expected IsUnavailable to be false for real data")
	}
}

func TestExcerptTruncation(t *testing.T) {
	raw := []byte(`[{"n":1},{"n":2},{"n":3},{"n":4}]`)
	d, err := NewDocument(category.InstalledPrograms, raw)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	full := d.Excerpt(0)
	if !strings.Contains(full, `"n": 4`) {
		t.Errorf("expected full excerpt to include last item, got %s", full)
	}

	cut := d.Excerpt(2)
	if strings.Contains(cut, `"n": 3`) {
		t.Errorf("expected truncated excerpt to drop item 3, got %s", cut)
	}
	if !strings.Contains(cut, "2 of 4 items shown") {
		t.Errorf("expected truncation note, got %s", cut)
	}
}

func TestFilterOut(t *testing.T) {
	values := map[string]any{
		"Path":           "C:\\Windows",
		"API_KEY":        "secret",
		"DB_PASSWORD":    "secret",
		"SessionToken":   "secret",
		"ComputerName":   "HOST-1",
		"TempFolderPath": "C:\\Temp",
	}

	got := FilterOut(values, []string{"*password*", "*token*", "*key*"})

	for _, k := range []string{"API_KEY", "DB_PASSWORD", "SessionToken"} {
		if _, ok := got[k]; ok {
			t.Errorf("expected %q to be filtered out", k)
		}
	}
	for _, k := range []string{"Path", "ComputerName", "TempFolderPath"} {
		if _, ok := got[k]; !ok {
			t.Errorf("expected %q to be kept", k)
		}
	}
}

func TestSnapshotDocumentLookup(t *testing.T) {
	s := New("SystemState_20260830_150405", "v0.1.0")
	d, err := NewDocument(category.DiskSpace, []byte(`[{"Drive":"C:"}]`))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	s.Documents = append(s.Documents, d)

	if s.Document(category.DiskSpace) == nil {
		t.Error("expected DiskSpace document")
	}
	if s.Document(category.Network) != nil {
		t.Error("expected no Network document")
	}
	if len(s.Categories()) != 1 || s.Categories()[0] != category.DiskSpace {
		t.Errorf("Categories = %v", s.Categories())
	}
}
