package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-d", "app.db"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-d", "app.db"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-d", "x.db"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-d", "a.db", "-c", "conf.json", "-t", "5"},
			allowed: []string{"-d", "-t"},
			want:    []string{"-d", "a.db", "-t", "5"},
		},
		{
			name:    "repeated flag preserved",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJSONConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/short.json", JSONConfigPath([]string{"-c", "/etc/short.json"}))
	assert.Equal(t, "/etc/long.json", JSONConfigPath([]string{"-config", "/etc/long.json"}))
	assert.Equal(t, "/etc/eq.json", JSONConfigPath([]string{"-d", "x.db", "-config=/etc/eq.json"}))
	assert.Empty(t, JSONConfigPath([]string{"-d", "x.db"}))
	assert.Equal(t, "/2.json", JSONConfigPath([]string{"-c", "/1.json", "-config", "/2.json"}))
}
