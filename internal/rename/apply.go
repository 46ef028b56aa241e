package rename

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/slrename/slrename/internal/report"
)

// Rule is one explicit rename: an old name or path mapped to a new one.
type Rule struct {
	Old string
	New string
}

// LoadRules reads ordered old: new pairs from a YAML mapping file.
// Mapping order is the order renames run in, so a chain like a->b, b->c
// behaves predictably.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rules file must be a mapping of old: new names")
	}

	rules := make([]Rule, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("rules file line %d: entries must be old: new name pairs", k.Line)
		}
		oldName := strings.TrimSpace(k.Value)
		newName := strings.TrimSpace(v.Value)
		if oldName == "" || newName == "" {
			return nil, fmt.Errorf("rules file line %d: empty name", k.Line)
		}
		rules = append(rules, Rule{Old: oldName, New: newName})
	}
	return rules, nil
}

// Apply runs each rule through the single-file flow, recording outcomes on
// run. Rules that fail to resolve are recorded and the batch continues.
func (e *Engine) Apply(rules []Rule, run *report.Run) {
	for _, rule := range rules {
		rr := e.proj.Resolve(rule.Old)
		if rr.Ambiguous {
			run.Record(report.FileResult{
				OldPath: rule.Old,
				Status:  report.StatusFailed,
				Reason:  fmt.Sprintf("ambiguous name, matches: %s", strings.Join(rr.Matches, ", ")),
			})
			continue
		}
		if rr.Error != "" {
			run.Record(report.FileResult{
				OldPath: rule.Old,
				Status:  report.StatusFailed,
				Reason:  rr.Error,
			})
			continue
		}

		newRel, err := TargetRel(rr.Entry.Path, rule.New)
		if err != nil {
			run.Record(report.FileResult{
				OldPath: rr.Entry.Path,
				Status:  report.StatusFailed,
				Reason:  err.Error(),
			})
			continue
		}

		log.Debug().Msgf("apply: %s -> %s", rr.Entry.Path, newRel)
		run.Record(e.RenameFile(rr.Entry.Path, newRel))
	}
}
