package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewReader, "reader"},
		{ViewSimilar, "similar"},
		{ViewHelp, "help"},
		{ViewSearch, "search"},
		{ViewType(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.view.String())
		})
	}
}
