package otel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{name: "bool", value: true, want: attribute.BoolValue(true)},
		{name: "string", value: "rooms", want: attribute.StringValue("rooms")},
		{name: "int", value: 3, want: attribute.IntValue(3)},
		{name: "int64", value: int64(7), want: attribute.Int64Value(7)},
		{name: "float", value: 1.5, want: attribute.Float64Value(1.5)},
		{name: "string slice", value: []string{"g-1", "g-2"}, want: attribute.StringSliceValue([]string{"g-1", "g-2"})},
		{name: "stringer", value: 2 * time.Second, want: attribute.StringValue("2s")},
		{name: "error", value: errors.New("boom"), want: attribute.StringValue("boom")},
		{name: "fallback", value: struct{ N int }{N: 1}, want: attribute.StringValue("{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := toAttribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.want, kv.Value)
		})
	}
}
