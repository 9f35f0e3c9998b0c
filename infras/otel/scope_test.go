package otel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestToAttribute(t *testing.T) {
	at := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{name: "bool", value: true, want: attribute.BoolValue(true)},
		{name: "string", value: "slot", want: attribute.StringValue("slot")},
		{name: "int", value: 60, want: attribute.IntValue(60)},
		{name: "int64", value: int64(7), want: attribute.Int64Value(7)},
		{name: "float", value: 1.5, want: attribute.Float64Value(1.5)},
		{name: "strings", value: []string{"a", "b"}, want: attribute.StringSliceValue([]string{"a", "b"})},
		{name: "time", value: at, want: attribute.StringValue("2024-06-10T09:00:00Z")},
		{name: "fallback", value: errors.New("boom"), want: attribute.StringValue("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := toAttribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.want, kv.Value)
		})
	}
}
