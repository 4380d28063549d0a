package plumber

import (
	"strings"
	"testing"
)

// pipelinesDoc is a realistic bitbucket-pipelines layout with one anchor
// and two aliases for the lint step.
const pipelinesDoc = Document("definitions:\n" +
	"  steps:\n" +
	"    - step: &lint\n" +
	"        script:\n" +
	"          - make lint\n" +
	"    - step: &build\n" +
	"        script:\n" +
	"          - make build\n" +
	"pipelines:\n" +
	"  default:\n" +
	"    - step: *lint\n" +
	"    - step: *build\n" +
	"  branches:\n" +
	"    main:\n" +
	"      - step: *lint\n")

func TestRemoveStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     Document
		step    string
		want    Document
		removed bool
	}{
		{
			name:    "anchor absent leaves document untouched",
			doc:     pipelinesDoc,
			step:    "deploy",
			want:    pipelinesDoc,
			removed: false,
		},
		{
			name: "alias without anchor is not touched",
			doc: "pipelines:\n" +
				"  default:\n" +
				"    - step: *orphan\n" +
				"  branches:\n" +
				"    main: []\n",
			step: "orphan",
			want: "pipelines:\n" +
				"  default:\n" +
				"    - step: *orphan\n" +
				"  branches:\n" +
				"    main: []\n",
			removed: false,
		},
		{
			name: "anchor with no aliases",
			doc: "- step: &build\n    script:\n      - run\n" +
				"- step: &deploy\n    script:\n      - go\n",
			step:    "build",
			want:    "- step: &deploy\n    script:\n      - go\n",
			removed: true,
		},
		{
			name: "anchor and every alias removed",
			doc:  pipelinesDoc,
			step: "lint",
			want: "definitions:\n" +
				"  steps:\n" +
				"    - step: &build\n" +
				"        script:\n" +
				"          - make build\n" +
				"pipelines:\n" +
				"  default:\n" +
				"    - step: *build\n" +
				"  branches:\n" +
				"    main:",
			removed: true,
		},
		{
			name: "repeated aliases end cleanly at pipelines header",
			doc: "- step: &lint\n" +
				"    script:\n" +
				"      - make lint\n" +
				"- step: *lint\n" +
				"- step: *lint\n" +
				"pipelines:\n" +
				"  default: []\n",
			step: "lint",
			want: "pipelines:\n" +
				"  default: []\n",
			removed: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, removed := RemoveStep(tt.doc, tt.step, DefaultBoundaries())
			if removed != tt.removed {
				t.Fatalf("RemoveStep(%q) removed = %v, want %v", tt.step, removed, tt.removed)
			}
			if got != tt.want {
				t.Errorf("RemoveStep(%q) = %q, want %q", tt.step, got, tt.want)
			}
		})
	}
}

func TestRemoveStepLeavesNoMarkers(t *testing.T) {
	t.Parallel()

	got, removed := RemoveStep(pipelinesDoc, "lint", DefaultBoundaries())
	if !removed {
		t.Fatal("RemoveStep() removed = false, want true")
	}

	for _, marker := range []string{"- step: &lint", "- step: *lint"} {
		if strings.Contains(string(got), marker) {
			t.Errorf("document still contains %q after removal", marker)
		}
	}

	// Unrelated step markers survive verbatim.
	for _, marker := range []string{"- step: &build", "- step: *build"} {
		if !strings.Contains(string(got), marker) {
			t.Errorf("document lost unrelated marker %q", marker)
		}
	}
}

func TestRemoveStepFailureIsIdempotent(t *testing.T) {
	t.Parallel()

	first, removed := RemoveStep(pipelinesDoc, "lint", DefaultBoundaries())
	if !removed {
		t.Fatal("first RemoveStep() removed = false, want true")
	}

	second, removed := RemoveStep(first, "lint", DefaultBoundaries())
	if removed {
		t.Error("second RemoveStep() removed = true, want false")
	}
	if second != first {
		t.Errorf("second RemoveStep() changed the document: %q != %q", second, first)
	}
}
