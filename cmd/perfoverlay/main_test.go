package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunAsync(t *testing.T) {
	boom := errors.New("listen failed")
	tests := []struct {
		name string
		f    func() error
		want error
	}{
		{"ok", func() error { return nil }, nil},
		{"error", func() error { return boom }, boom},
		{"panic", func() error { panic("server exploded") }, errPanicked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			select {
			case err := <-runAsync(tt.f):
				assert.ErrorIs(t, err, tt.want)
			case <-time.After(5 * time.Second):
				t.Fatal("no result delivered")
			}
		})
	}
}
