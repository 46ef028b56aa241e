package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestListDocsTopicsLoadsEmbeddedDocs(t *testing.T) {
	t.Parallel()

	topics, err := listDocsTopics()
	if err != nil {
		t.Fatalf("listDocsTopics() error = %v", err)
	}
	if len(topics) == 0 {
		t.Fatalf("expected embedded docs topics, got none")
	}

	// Reading order first, everything present.
	var ids []string
	for _, topic := range topics {
		ids = append(ids, topic.ID)
	}
	if ids[0] != "getting-started" {
		t.Fatalf("first topic = %q, want getting-started (got %v)", ids[0], ids)
	}
	for _, expected := range []string{"renaming", "references", "configuration", "vcs"} {
		found := false
		for _, id := range ids {
			if id == expected {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected topic %q in %v", expected, ids)
		}
	}
}

func TestListDocsTopicsExtractsTitles(t *testing.T) {
	t.Parallel()

	topics, err := listDocsTopics()
	if err != nil {
		t.Fatalf("listDocsTopics() error = %v", err)
	}
	for _, topic := range topics {
		if topic.Title == "" || topic.Title == topic.ID {
			t.Errorf("topic %q has no extracted title (got %q)", topic.ID, topic.Title)
		}
	}
}

func TestFindDocsTopicNormalizesInput(t *testing.T) {
	t.Parallel()

	topics, err := listDocsTopics()
	if err != nil {
		t.Fatalf("listDocsTopics() error = %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{in: "renaming", want: "renaming"},
		{in: "renaming.md", want: "renaming"},
		{in: "Getting-Started", want: "getting-started"},
		{in: "getting_started", want: "getting-started"},
		{in: " vcs ", want: "vcs"},
	}
	for _, tc := range tests {
		topic, ok := findDocsTopic(topics, tc.in)
		if !ok {
			t.Errorf("findDocsTopic(%q): not found", tc.in)
			continue
		}
		if topic.ID != tc.want {
			t.Errorf("findDocsTopic(%q) = %q, want %q", tc.in, topic.ID, tc.want)
		}
	}

	if _, ok := findDocsTopic(topics, "no-such-topic"); ok {
		t.Error("findDocsTopic(no-such-topic): expected miss")
	}
}

func TestSearchDocsFindsKnownPhrase(t *testing.T) {
	t.Parallel()

	matches, err := searchDocs("postfix", 50)
	if err != nil {
		t.Fatalf("searchDocs() error = %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches for \"postfix\"")
	}
	for _, m := range matches {
		if !strings.Contains(strings.ToLower(m.Snippet), "postfix") {
			t.Errorf("snippet %q does not contain the query", m.Snippet)
		}
		if m.Line < 1 {
			t.Errorf("match in %s has line %d", m.Topic, m.Line)
		}
	}
}

func TestSearchDocsHonorsLimit(t *testing.T) {
	t.Parallel()

	matches, err := searchDocs("the", 3)
	if err != nil {
		t.Fatalf("searchDocs() error = %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("len(matches) = %d, want 3", len(matches))
	}
}

func TestDocsCommandJSONListsTopics(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() { jsonOutput = prevJSON })
	jsonOutput = true

	out := captureStdout(t, func() {
		if err := docsCmd.RunE(docsCmd, nil); err != nil {
			t.Fatalf("docsCmd.RunE: %v", err)
		}
	})

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			Topics []docsTopic `json:"topics"`
		} `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}
	if len(resp.Data.Topics) != resp.Meta.Count || resp.Meta.Count == 0 {
		t.Fatalf("topics=%d meta.count=%d", len(resp.Data.Topics), resp.Meta.Count)
	}
}
