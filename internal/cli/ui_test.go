package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/pipeline"
)

func TestRoleBadge(t *testing.T) {
	for _, r := range []model.Role{
		{Kind: model.RoleGroup},
		{Kind: model.RoleLeaf},
	} {
		if got := roleBadge(r); !strings.Contains(got, r.String()) {
			t.Errorf("roleBadge(%v) = %q", r, got)
		}
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		stats  pipeline.Stats
		cached bool
		want   []string
		absent []string
	}{
		{
			name:   "fresh without ports",
			stats:  pipeline.Stats{NodeCount: 2, EdgeCount: 1},
			want:   []string{"2 nodes", "1 edges", "fresh"},
			absent: []string{"ports", "dropped"},
		},
		{
			name:   "cached with drops",
			stats:  pipeline.Stats{NodeCount: 4, EdgeCount: 3, HandleCount: 2, DroppedCount: 1},
			cached: true,
			want:   []string{"2 ports", "1 dropped", "cached"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.stats, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("%q lacks %q", got, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("%q should not mention %q", got, a)
				}
			}
		})
	}
}
