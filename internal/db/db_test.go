package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithInvalidURL(t *testing.T) {
	_, err := New(context.Background(), "postgres://invalid:5432/nonexistent?connect_timeout=1")
	assert.Error(t, err)
}

func TestRunMigrationsMissingDir(t *testing.T) {
	err := RunMigrations("postgres://invalid:5432/nonexistent?connect_timeout=1", t.TempDir()+"/missing")
	assert.Error(t, err)
}
