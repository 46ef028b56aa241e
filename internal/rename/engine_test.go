package rename

import (
	"strings"
	"testing"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/report"
	"github.com/slrename/slrename/internal/testutil"
)

func loadEngine(t *testing.T, tp *testutil.TestProject, opts Options) (*Engine, *project.Project) {
	t.Helper()
	proj, err := project.Load(tp.Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return New(proj, opts), proj
}

func hasWarning(fr report.FileResult, code string) bool {
	for _, w := range fr.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestTargetRel(t *testing.T) {
	tests := []struct {
		name    string
		oldRel  string
		newName string
		want    string
		wantErr bool
	}{
		{"bare name keeps directory and extension", "models/fuelsys.slx", "engine", "models/engine.slx", false},
		{"bare name with matching extension", "models/fuelsys.slx", "engine.slx", "models/engine.slx", false},
		{"extension case is forgiven", "models/fuelsys.slx", "Engine.SLX", "models/Engine.slx", false},
		{"bare name at project root", "fuelsys.slx", "engine", "engine.slx", false},
		{"bare name rejects extension change", "models/fuelsys.slx", "engine.mdl", "", true},
		{"path moves the file", "models/fuelsys.slx", "archive/fuelsys.slx", "archive/fuelsys.slx", false},
		{"path rejects extension change", "models/fuelsys.slx", "lib/engine.sldd", "", true},
		{"path requires the extension", "models/fuelsys.slx", "lib/engine", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetRel(tt.oldRel, tt.newName)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("TargetRel(%q, %q) = %q, want error", tt.oldRel, tt.newName, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("TargetRel(%q, %q): %v", tt.oldRel, tt.newName, err)
			}
			if got != tt.want {
				t.Errorf("TargetRel(%q, %q) = %q, want %q", tt.oldRel, tt.newName, got, tt.want)
			}
		})
	}
}

func TestRenameFilePropagatesReferences(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("startup.m", "load_system('airflow_calc');\nsim('airflow_calc');\n").
		WithPackage("models/airflow_calc.slx", testutil.ZipPart{
			Name: "simulink/blockdiagram.xml",
			Data: []byte(`<Block Name="Gain" Source="airflow_calc/Params"/>`),
		}).
		WithPackage("models/fuelsys.slx", testutil.ZipPart{
			Name: "simulink/blockdiagram.xml",
			Data: []byte(`<ModelReference Name="airflow_calc" Path="airflow_calc"/>`),
		}).
		WithEntry("reqs/fuel.slreqx", `<?xml version="1.0"?><Requirements><Req model="airflow_calc" text="computed by airflow_calc"/></Requirements>`).
		Build()

	e, proj := loadEngine(t, tp, Options{})
	res := e.RenameFile("models/airflow_calc.slx", "models/airflow_estimator.slx")

	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}
	if res.VCSMove {
		t.Error("VCSMove = true without a repository")
	}

	testutil.AssertFileNotExists(t, tp, "models/airflow_calc.slx")
	testutil.AssertFileExists(t, tp, "models/airflow_estimator.slx")
	testutil.AssertFileContains(t, tp, "startup.m", "load_system('airflow_estimator')")
	testutil.AssertFileNotContains(t, tp, "startup.m", "airflow_calc")
	testutil.AssertFileContains(t, tp, "reqs/fuel.slreqx", `model="airflow_estimator"`)
	testutil.AssertFileContains(t, tp, "reqs/fuel.slreqx", "computed by airflow_estimator")

	part := string(tp.ZipPartContent("models/fuelsys.slx", "simulink/blockdiagram.xml"))
	if !strings.Contains(part, `Name="airflow_estimator"`) {
		t.Errorf("referencing package part not rewritten: %s", part)
	}

	self := string(tp.ZipPartContent("models/airflow_estimator.slx", "simulink/blockdiagram.xml"))
	if !strings.Contains(self, "airflow_estimator/Params") {
		t.Errorf("renamed package's own part not rewritten: %s", self)
	}

	wantRefs := []string{"startup.m", "models/airflow_estimator.slx", "models/fuelsys.slx", "reqs/fuel.slreqx"}
	if len(res.Refs) != len(wantRefs) {
		t.Fatalf("got %d ref updates, want %d: %+v", len(res.Refs), len(wantRefs), res.Refs)
	}
	for i, want := range wantRefs {
		if res.Refs[i].Path != want {
			t.Errorf("refs[%d].Path = %q, want %q", i, res.Refs[i].Path, want)
		}
		if res.Refs[i].Skipped {
			t.Errorf("refs[%d] (%s) skipped: %s", i, want, res.Refs[i].Reason)
		}
	}
	if res.Refs[0].Mentions != 2 {
		t.Errorf("startup.m mentions = %d, want 2", res.Refs[0].Mentions)
	}

	// Membership persists under the new path.
	if proj.Contains("models/airflow_calc.slx") {
		t.Error("old path still tracked in memory")
	}
	reloaded, err := project.Load(tp.Path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Contains("models/airflow_estimator.slx") {
		t.Error("new path not tracked after save")
	}
	if reloaded.Contains("models/airflow_calc.slx") {
		t.Error("old path still tracked after save")
	}
}

func TestRenameFilePreservesManifestOrder(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("plant.prj").
		WithEntry("startup.m", "x = 1;\n").
		WithEntry("lib/valves.mdl", "Library { Name \"valves\" }\n").
		WithEntry("shutdown.m", "y = 2;\n").
		Build()

	e, _ := loadEngine(t, tp, Options{})
	res := e.RenameFile("lib/valves.mdl", "lib/valve_bank.mdl")
	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}

	reloaded, err := project.Load(tp.Path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	var paths []string
	for _, entry := range reloaded.Entries() {
		paths = append(paths, entry.Path)
	}
	want := []string{"startup.m", "lib/valve_bank.mdl", "shutdown.m"}
	if len(paths) != len(want) {
		t.Fatalf("entries = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestRenameFileDryRun(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("startup.m", "load_system('ctrl');\n").
		WithPackage("ctrl.slx", testutil.ZipPart{
			Name: "simulink/blockdiagram.xml",
			Data: []byte(`<P Name="Model">ctrl</P>`),
		}).
		Build()

	manifestBefore := tp.ReadFile("fuelsys.prj")
	scriptBefore := tp.ReadFile("startup.m")

	e, _ := loadEngine(t, tp, Options{DryRun: true})
	res := e.RenameFile("ctrl.slx", "ctrl_main.slx")

	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}
	if len(res.Refs) != 2 {
		t.Fatalf("got %d ref previews, want 2: %+v", len(res.Refs), res.Refs)
	}
	if res.Refs[1].Path != "ctrl_main.slx" {
		t.Errorf("self ref previewed at %q, want new path", res.Refs[1].Path)
	}
	if res.Refs[0].Mentions != 1 {
		t.Errorf("previewed mentions = %d, want 1", res.Refs[0].Mentions)
	}

	testutil.AssertFileExists(t, tp, "ctrl.slx")
	testutil.AssertFileNotExists(t, tp, "ctrl_main.slx")
	if got := tp.ReadFile("fuelsys.prj"); got != manifestBefore {
		t.Error("dry run modified the manifest")
	}
	if got := tp.ReadFile("startup.m"); got != scriptBefore {
		t.Error("dry run modified a referencing file")
	}
}

func TestRenameFileNoRefs(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("startup.m", "load_system('ctrl');\n").
		WithEntry("lib/ctrl.mdl", "Model { Name \"ctrl\" }\n").
		Build()

	e, _ := loadEngine(t, tp, Options{NoRefs: true})
	res := e.RenameFile("lib/ctrl.mdl", "lib/governor.mdl")

	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}
	if len(res.Refs) != 0 {
		t.Errorf("got %d ref updates with NoRefs, want 0", len(res.Refs))
	}
	testutil.AssertFileContains(t, tp, "startup.m", "load_system('ctrl')")
	testutil.AssertFileContains(t, tp, "lib/governor.mdl", `Name "ctrl"`)
}

func TestRenameFileValidation(t *testing.T) {
	build := func(t *testing.T) (*Engine, *testutil.TestProject) {
		t.Helper()
		tp := testutil.NewTestProject(t).
			WithManifestName("fuelsys.prj").
			WithEntry("models/ctrl.m", "x = 1;\n").
			WithEntry("models/gain.m", "g = 2;\n").
			WithFile("models/loose.m", "z = 3;\n").
			Build()
		e, _ := loadEngine(t, tp, Options{})
		return e, tp
	}

	t.Run("not tracked", func(t *testing.T) {
		e, _ := build(t)
		res := e.RenameFile("models/ghost.m", "models/spirit.m")
		if res.Status != report.StatusFailed || !strings.Contains(res.Reason, "not in project") {
			t.Errorf("got %s (%s), want failed about membership", res.Status, res.Reason)
		}
	})

	t.Run("same path", func(t *testing.T) {
		e, _ := build(t)
		res := e.RenameFile("models/ctrl.m", "models/ctrl.m")
		if res.Status != report.StatusSkipped {
			t.Errorf("got %s (%s), want skipped", res.Status, res.Reason)
		}
	})

	t.Run("extension change", func(t *testing.T) {
		e, _ := build(t)
		res := e.RenameFile("models/ctrl.m", "models/ctrl.slx")
		if res.Status != report.StatusFailed || !strings.Contains(res.Reason, "extension must stay .m") {
			t.Errorf("got %s (%s), want failed about extension", res.Status, res.Reason)
		}
	})

	t.Run("destination tracked", func(t *testing.T) {
		e, _ := build(t)
		res := e.RenameFile("models/ctrl.m", "models/gain.m")
		if res.Status != report.StatusFailed || !strings.Contains(res.Reason, "already tracked") {
			t.Errorf("got %s (%s), want failed about tracking", res.Status, res.Reason)
		}
	})

	t.Run("destination exists on disk", func(t *testing.T) {
		e, tp := build(t)
		res := e.RenameFile("models/ctrl.m", "models/loose.m")
		if res.Status != report.StatusFailed || !strings.Contains(res.Reason, "destination exists") {
			t.Errorf("got %s (%s), want failed about existing file", res.Status, res.Reason)
		}
		testutil.AssertFileContains(t, tp, "models/loose.m", "z = 3;")
	})

	t.Run("escapes project", func(t *testing.T) {
		e, _ := build(t)
		res := e.RenameFile("models/ctrl.m", "../outside.m")
		if res.Status != report.StatusFailed {
			t.Errorf("got %s (%s), want failed", res.Status, res.Reason)
		}
	})
}

func TestRenameFileIntoNewDirectory(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("ctrl.m", "x = 1;\n").
		Build()

	e, _ := loadEngine(t, tp, Options{})
	res := e.RenameFile("ctrl.m", "scripts/archive/ctrl.m")
	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}
	testutil.AssertFileExists(t, tp, "scripts/archive/ctrl.m")
	testutil.AssertFileNotExists(t, tp, "ctrl.m")
}

func TestRenameFileWarnsOnNonIdentifierName(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithPackage("ctrl.slx", testutil.ZipPart{
			Name: "simulink/blockdiagram.xml",
			Data: []byte(`<P Name="Model">ctrl</P>`),
		}).
		WithEntry("notes.m", "% plain comment\n").
		Build()

	e, _ := loadEngine(t, tp, Options{})

	res := e.RenameFile("ctrl.slx", "2nd-ctrl.slx")
	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}
	if !hasWarning(res, report.WarnNameNotIdentifier) {
		t.Errorf("missing %s warning: %+v", report.WarnNameNotIdentifier, res.Warnings)
	}

	// Scripts are not loaded by bare name, so the same rename on a script
	// draws no warning.
	res = e.RenameFile("notes.m", "2nd-notes.m")
	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}
	if hasWarning(res, report.WarnNameNotIdentifier) {
		t.Errorf("unexpected %s warning on a script: %+v", report.WarnNameNotIdentifier, res.Warnings)
	}
}

func TestRenameFileScanOnlyKindsStayStale(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("lib/thermo.mdl", "Model { Name \"thermo\" }\n").
		WithPackage("data/lookup.xlsx", testutil.ZipPart{
			Name: "xl/worksheets/sheet1.xml",
			Data: []byte(`<c t="str"><v>thermo</v></c>`),
		}).
		WithEntryBytes("data/cal.mat", []byte("MATLAB 5.0 MAT-file\x00thermo\x00gains")).
		Build()

	xlsxBefore := tp.ReadBytes("data/lookup.xlsx")
	matBefore := tp.ReadBytes("data/cal.mat")

	e, _ := loadEngine(t, tp, Options{})
	res := e.RenameFile("lib/thermo.mdl", "lib/thermo_props.mdl")
	if res.Status != report.StatusRenamed {
		t.Fatalf("status = %s (%s), want renamed", res.Status, res.Reason)
	}

	var skipped int
	for _, ref := range res.Refs {
		if ref.Skipped {
			skipped++
			if !strings.Contains(ref.Reason, "cannot be rewritten") {
				t.Errorf("skip reason = %q", ref.Reason)
			}
		}
	}
	if skipped != 2 {
		t.Fatalf("got %d skipped refs, want 2: %+v", skipped, res.Refs)
	}
	if !hasWarning(res, report.WarnUpdateUnsupported) {
		t.Errorf("missing %s warning: %+v", report.WarnUpdateUnsupported, res.Warnings)
	}

	if string(tp.ReadBytes("data/lookup.xlsx")) != string(xlsxBefore) {
		t.Error("scan-only spreadsheet was modified")
	}
	if string(tp.ReadBytes("data/cal.mat")) != string(matBefore) {
		t.Error("scan-only archive was modified")
	}
}

func TestRenameFileRestoresMembershipWhenMoveFails(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("ctrl.m", "x = 1;\n").
		WithFile("models", "a file squatting on the directory name").
		Build()

	e, proj := loadEngine(t, tp, Options{})

	// MkdirAll cannot create a directory under a regular file, so the move
	// fails after the entry was removed.
	res := e.RenameFile("ctrl.m", "models/sub/ctrl.m")
	if res.Status != report.StatusFailed || !strings.Contains(res.Reason, "move failed") {
		t.Fatalf("got %s (%s), want failed move", res.Status, res.Reason)
	}
	if !res.Restored {
		t.Error("Restored = false after a failed move")
	}
	if !hasWarning(res, report.WarnMembershipRestored) {
		t.Errorf("missing %s warning: %+v", report.WarnMembershipRestored, res.Warnings)
	}

	if !proj.Contains("ctrl.m") {
		t.Error("entry not restored in memory")
	}
	testutil.AssertFileExists(t, tp, "ctrl.m")

	reloaded, err := project.Load(tp.Path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Contains("ctrl.m") {
		t.Error("entry missing from manifest on disk")
	}
}
