package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

func TestRelevanceFilter_DefaultLabel(t *testing.T) {
	f := NewRelevanceFilter("")

	assert.Equal(t, "1.severity: security", f.Label())
}

func TestRelevanceFilter_IsRelevant(t *testing.T) {
	f := NewRelevanceFilter(securityLabel)

	tests := []struct {
		name   string
		labels []string
		want   bool
	}{
		{"exact label", []string{"6.topic: python", securityLabel}, true},
		{"no labels", nil, false},
		{"other labels", []string{"10.rebuild-linux: 1-10"}, false},
		{"different case", []string{"1.severity: Security"}, false},
		{"surrounding whitespace", []string{" 1.severity: security"}, false},
		{"prefix only", []string{"1.severity"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.PullRequest{Labels: tt.labels}
			assert.Equal(t, tt.want, f.IsRelevant(p))
		})
	}
}

func TestRelevanceFilter_CustomLabel(t *testing.T) {
	f := NewRelevanceFilter("security")

	assert.True(t, f.IsRelevant(&domain.PullRequest{Labels: []string{"security"}}))
	assert.False(t, f.IsRelevant(&domain.PullRequest{Labels: []string{securityLabel}}))
}
