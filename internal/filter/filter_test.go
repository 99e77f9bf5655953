package filter

import (
	"testing"

	"github.com/jokarl/branchsource/internal/discovery"
	"github.com/jokarl/branchsource/internal/scm"
)

var _ discovery.Excluder = (*Filter)(nil)

func TestFilter_IsExcluded(t *testing.T) {
	pr := scm.PullRequestHead{Name: "PR-3-MERGE", Number: 3, OriginName: "wip/experiment"}

	tests := []struct {
		name  string
		rules map[scm.Kind]Patterns
		head  scm.Head
		want  bool
	}{
		{
			name: "no rules",
			head: scm.BranchHead{Name: "main"},
			want: false,
		},
		{
			name:  "kind without rules",
			rules: map[scm.Kind]Patterns{scm.KindTag: {Exclude: []string{"**"}}},
			head:  scm.BranchHead{Name: "main"},
			want:  false,
		},
		{
			name:  "exclude match",
			rules: map[scm.Kind]Patterns{scm.KindBranch: {Exclude: []string{"wip/**"}}},
			head:  scm.BranchHead{Name: "wip/a/b"},
			want:  true,
		},
		{
			name:  "exclude no match",
			rules: map[scm.Kind]Patterns{scm.KindBranch: {Exclude: []string{"wip/**"}}},
			head:  scm.BranchHead{Name: "main"},
			want:  false,
		},
		{
			name:  "include match",
			rules: map[scm.Kind]Patterns{scm.KindTag: {Include: []string{"v*"}}},
			head:  scm.TagHead{Name: "v1.2.0"},
			want:  false,
		},
		{
			name:  "include no match",
			rules: map[scm.Kind]Patterns{scm.KindTag: {Include: []string{"v*"}}},
			head:  scm.TagHead{Name: "nightly"},
			want:  true,
		},
		{
			name: "exclude wins over include",
			rules: map[scm.Kind]Patterns{scm.KindBranch: {
				Include: []string{"release/**"},
				Exclude: []string{"release/old-*"},
			}},
			head: scm.BranchHead{Name: "release/old-1"},
			want: true,
		},
		{
			name:  "pull request by head name",
			rules: map[scm.Kind]Patterns{scm.KindPullRequest: {Exclude: []string{"PR-3-*"}}},
			head:  pr,
			want:  true,
		},
		{
			name:  "pull request by source branch",
			rules: map[scm.Kind]Patterns{scm.KindPullRequest: {Exclude: []string{"wip/**"}}},
			head:  pr,
			want:  true,
		},
		{
			name:  "pull request included by source branch",
			rules: map[scm.Kind]Patterns{scm.KindPullRequest: {Include: []string{"wip/*"}}},
			head:  pr,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.rules)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := f.IsExcluded(tt.head); got != tt.want {
				t.Errorf("IsExcluded(%s) = %v, want %v", tt.head.HeadName(), got, tt.want)
			}
		})
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(map[scm.Kind]Patterns{scm.KindBranch: {Exclude: []string{"[unclosed"}}})
	if err == nil {
		t.Error("New() expected error for invalid pattern")
	}
}

func TestFilter_Empty(t *testing.T) {
	var nilFilter *Filter
	if !nilFilter.Empty() || nilFilter.IsExcluded(scm.BranchHead{Name: "x"}) {
		t.Error("nil filter should be empty and exclude nothing")
	}

	f, err := New(map[scm.Kind]Patterns{scm.KindBranch: {}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !f.Empty() {
		t.Error("Empty() = false for filter without patterns")
	}

	f, err = New(map[scm.Kind]Patterns{scm.KindBranch: {Include: []string{"main"}}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if f.Empty() {
		t.Error("Empty() = true for filter with patterns")
	}
}
