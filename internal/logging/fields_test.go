package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommon(t *testing.T) {
	tests := []struct {
		name    string
		base    []slog.Attr
		service string
		version string
		want    []string
	}{
		{name: "both", service: "schedule-board", version: "v1", want: []string{FieldService, FieldVersion}},
		{name: "service only", service: "schedule-board", want: []string{FieldService}},
		{name: "none keeps base", base: []slog.Attr{slog.String("existing", "x")}, want: []string{"existing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := WithCommon(tt.base, tt.service, tt.version)
			if len(attrs) != len(tt.want) {
				t.Fatalf("expected %d attrs, got %+v", len(tt.want), attrs)
			}
			for i, key := range tt.want {
				if attrs[i].Key != key {
					t.Fatalf("attr %d: expected key %q, got %q", i, key, attrs[i].Key)
				}
			}
		})
	}
}

func TestErrUsesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Warn("load failed", Err(errors.New("roster missing")))

	if !strings.Contains(buf.String(), FieldError+`="roster missing"`) {
		t.Fatalf("expected error attribute, got %s", buf.String())
	}
}
