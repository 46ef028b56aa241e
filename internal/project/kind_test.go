package project

import "testing"

func TestKindForExt(t *testing.T) {
	tests := []struct {
		ext  string
		want Kind
		ok   bool
	}{
		{".slx", KindModel, true},
		{"slx", KindModel, true},
		{".SLX", KindModel, true},
		{".mdl", KindLibrary, true},
		{".m", KindScript, true},
		{".sldd", KindDictionary, true},
		{".slmx", KindLinkMap, true},
		{".slreqx", KindRequirements, true},
		{".xlsx", KindSpreadsheet, true},
		{".mat", KindArchive, true},
		{".md", "", false},
		{".prj", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := KindForExt(tc.ext)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("KindForExt(%q) = %q, %v, want %q, %v", tc.ext, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
		ok   bool
	}{
		{"models/fuelsys.slx", KindModel, true},
		{"lib/valves.mdl", KindLibrary, true},
		{"scripts/init_params.m", KindScript, true},
		{"data/plant.sldd", KindDictionary, true},
		{"links/fuelsys.slmx", KindLinkMap, true},
		{"reqs/fuelsys.slreqx", KindRequirements, true},
		{"data/calibration.xlsx", KindSpreadsheet, true},
		{"data/baseline.mat", KindArchive, true},
		{"README.md", "", false},
		{"fuelsys.prj", "", false},
		{"noext", "", false},
	}
	for _, tc := range tests {
		got, ok := KindForPath(tc.path)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("KindForPath(%q) = %q, %v, want %q, %v", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("model"); err != nil || k != KindModel {
		t.Fatalf("ParseKind(model) = %q, %v", k, err)
	}
	if k, err := ParseKind(" Data-Dictionary "); err != nil || k != KindDictionary {
		t.Fatalf("ParseKind with padding/case = %q, %v", k, err)
	}
	if _, err := ParseKind("notebook"); err == nil {
		t.Fatal("ParseKind(notebook) succeeded, want error")
	}
}

func TestKindExtRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		ext := k.Ext()
		if ext == "" {
			t.Fatalf("Kind %q has no extension", k)
		}
		got, ok := KindForExt(ext)
		if !ok || got != k {
			t.Fatalf("KindForExt(%q) = %q, %v, want %q", ext, got, ok, k)
		}
	}
}
