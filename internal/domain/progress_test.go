package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestProgress_Next(t *testing.T) {
	tests := []struct {
		from   Progress
		want   Progress
		wantOK bool
	}{
		{ProgressChapterI, ProgressChapterII, true},
		{ProgressChapterII, ProgressChapterIII, true},
		{ProgressChapterIII, ProgressChapterIV, true},
		{ProgressChapterIV, ProgressChapterV, true},
		{ProgressChapterV, ProgressCompleted, true},
		{ProgressCompleted, ProgressCompleted, false},
		{Progress("BAB VI"), Progress("BAB VI"), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.from), func(t *testing.T) {
			got, ok := tc.from.Next()
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestProgress_NeverSkipsOrDecreases(t *testing.T) {
	for i, p := range progressSequence {
		next, ok := p.Next()
		if !ok {
			assert.True(t, p.IsFinal())
			continue
		}
		assert.Equal(t, i+1, next.index())
	}
}
