package rename

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slrename/slrename/internal/project"
	"github.com/slrename/slrename/internal/report"
	"github.com/slrename/slrename/internal/testutil"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "renames.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	t.Run("ordered mapping", func(t *testing.T) {
		path := writeRules(t, "# batch for the v2 cleanup\nfuelsys_v2: fuelsys\nlib/valves.mdl: valve_bank\n")
		rules, err := LoadRules(path)
		if err != nil {
			t.Fatalf("LoadRules: %v", err)
		}
		want := []Rule{
			{Old: "fuelsys_v2", New: "fuelsys"},
			{Old: "lib/valves.mdl", New: "valve_bank"},
		}
		if len(rules) != len(want) {
			t.Fatalf("got %d rules, want %d", len(rules), len(want))
		}
		for i := range want {
			if rules[i] != want[i] {
				t.Errorf("rules[%d] = %+v, want %+v", i, rules[i], want[i])
			}
		}
	})

	t.Run("empty file", func(t *testing.T) {
		rules, err := LoadRules(writeRules(t, ""))
		if err != nil {
			t.Fatalf("LoadRules: %v", err)
		}
		if len(rules) != 0 {
			t.Errorf("got %d rules from an empty file", len(rules))
		}
	})

	t.Run("sequence root rejected", func(t *testing.T) {
		_, err := LoadRules(writeRules(t, "- fuelsys\n- valves\n"))
		if err == nil || !strings.Contains(err.Error(), "mapping") {
			t.Errorf("err = %v, want mapping error", err)
		}
	})

	t.Run("nested value rejected", func(t *testing.T) {
		_, err := LoadRules(writeRules(t, "fuelsys:\n  new: engine\n"))
		if err == nil || !strings.Contains(err.Error(), "pairs") {
			t.Errorf("err = %v, want pair error", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := LoadRules(writeRules(t, "fuelsys: \"\"\n"))
		if err == nil || !strings.Contains(err.Error(), "empty name") {
			t.Errorf("err = %v, want empty name error", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("LoadRules on a missing file succeeded")
		}
	})
}

func TestApplyRunsRulesInOrder(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("startup.m", "load_system('press_ctrl');\n").
		WithEntry("lib/press_ctrl.mdl", "Model { Name \"press_ctrl\" }\n").
		Build()

	e, _ := loadEngine(t, tp, Options{})
	run := report.NewRun("apply", "fuelsys", false)
	e.Apply([]Rule{
		{Old: "press_ctrl", New: "pressure_ctrl"},
		{Old: "no_such_model", New: "whatever"},
	}, run)

	sum := run.Summary()
	if sum.Renamed != 1 || sum.Failed != 1 {
		t.Fatalf("summary = %+v, want 1 renamed and 1 failed", sum)
	}

	testutil.AssertFileExists(t, tp, "lib/pressure_ctrl.mdl")
	testutil.AssertFileContains(t, tp, "startup.m", "load_system('pressure_ctrl')")
	testutil.AssertFileContains(t, tp, "lib/pressure_ctrl.mdl", `Name "pressure_ctrl"`)

	if run.Files[1].Status != report.StatusFailed {
		t.Errorf("unresolved rule status = %s", run.Files[1].Status)
	}
	if !strings.Contains(run.Files[1].Reason, "no tracked file named") {
		t.Errorf("unresolved rule reason = %q", run.Files[1].Reason)
	}
}

func TestApplyChainedRules(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("ctrl.m", "x = 1;\n").
		Build()

	e, _ := loadEngine(t, tp, Options{})
	run := report.NewRun("apply", "fuelsys", false)
	e.Apply([]Rule{
		{Old: "ctrl", New: "ctrl_tmp"},
		{Old: "ctrl_tmp", New: "governor"},
	}, run)

	if got := run.Summary().Renamed; got != 2 {
		t.Fatalf("renamed %d, want 2: %+v", got, run.Files)
	}
	testutil.AssertFileExists(t, tp, "governor.m")
	testutil.AssertFileNotExists(t, tp, "ctrl.m")
	testutil.AssertFileNotExists(t, tp, "ctrl_tmp.m")

	reloaded, err := project.Load(tp.Path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Contains("governor.m") {
		t.Error("final name not tracked")
	}
}

func TestApplyReportsAmbiguousNames(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("ctrl/util.m", "a = 1;\n").
		WithEntry("lib/util.m", "b = 2;\n").
		Build()

	e, _ := loadEngine(t, tp, Options{})
	run := report.NewRun("apply", "fuelsys", false)
	e.Apply([]Rule{{Old: "util", New: "helpers"}}, run)

	if len(run.Files) != 1 {
		t.Fatalf("got %d results, want 1", len(run.Files))
	}
	fr := run.Files[0]
	if fr.Status != report.StatusFailed {
		t.Fatalf("status = %s, want failed", fr.Status)
	}
	if !strings.Contains(fr.Reason, "ctrl/util.m") || !strings.Contains(fr.Reason, "lib/util.m") {
		t.Errorf("ambiguity reason does not list candidates: %q", fr.Reason)
	}

	testutil.AssertFileExists(t, tp, "ctrl/util.m")
	testutil.AssertFileExists(t, tp, "lib/util.m")
}

func TestApplyRejectsExtensionChange(t *testing.T) {
	tp := testutil.NewTestProject(t).
		WithManifestName("fuelsys.prj").
		WithEntry("startup.m", "x = 1;\n").
		Build()

	e, _ := loadEngine(t, tp, Options{})
	run := report.NewRun("apply", "fuelsys", false)
	e.Apply([]Rule{{Old: "startup", New: "startup.slx"}}, run)

	fr := run.Files[0]
	if fr.Status != report.StatusFailed || !strings.Contains(fr.Reason, "extension must stay .m") {
		t.Errorf("got %s (%s), want failed about extension", fr.Status, fr.Reason)
	}
	testutil.AssertFileExists(t, tp, "startup.m")
}
