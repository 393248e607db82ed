package logsvc

import (
	"bytes"
	"fmt"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ifag/portal/core"
)

func newTestLogger() (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST"})
	l.Enable(false)
	return l, &buf
}

func Test_report(t *testing.T) {
	errBoom := errors.New("boom")
	admin := core.Person{ID: "admin", Username: "admin", Role: "admin"}

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{
			name: "message only",
			want: []interface{}{"msg"},
		},
		{
			name: "error and custom data",
			args: []interface{}{errBoom, map[string]interface{}{"path": "/v1/admin/stats"}},
			want: []interface{}{"msg", errBoom, map[string]interface{}{"path": "/v1/admin/stats"}},
		},
		{
			name: "person adds the role",
			args: []interface{}{errBoom, admin},
			want: []interface{}{"msg", errBoom, map[string]interface{}{"role": "admin"}},
		},
		{
			name: "custom maps are merged",
			args: []interface{}{map[string]interface{}{"a": 1}, admin, map[string]interface{}{"b": 2}},
			want: []interface{}{"msg", map[string]interface{}{"a": 1, "b": 2, "role": "admin"}},
		},
		{
			name: "unauthenticated person is dropped",
			args: []interface{}{core.Person{}},
			want: []interface{}{"msg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, report("msg", tt.args))
		})
	}
}

func TestRollbarLogger(t *testing.T) {
	t.Run("levels are prefixed", func(t *testing.T) {
		l, buf := newTestLogger()
		l.Info("listening")
		l.Error("unable to load dashboard", fmt.Errorf("timeout"), core.Person{ID: "1", Role: "student"})

		assert.Equal(t, "[INFO] listening\n[ERROR] unable to load dashboard\ntimeout\n", buf.String())
	})

	t.Run("debug", func(t *testing.T) {
		l, buf := newTestLogger()
		l.Debug("query", map[string]interface{}{"n": 3})

		assert.Equal(t, "[DEBUG] query\nmap[n:3]\n", buf.String())
	})
}
