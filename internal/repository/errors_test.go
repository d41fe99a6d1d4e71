package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "tickets_unique_flight_seat"}

	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert ticket: %w", pgErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("unique")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("get order: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("no rows")))
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 50, normalizeLimit(0))
	assert.Equal(t, 50, normalizeLimit(-10))
	assert.Equal(t, 25, normalizeLimit(25))
	assert.Equal(t, 200, normalizeLimit(1000))
}

func TestNewOrderRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewOrderRepository(pool)
	assert.NotNil(t, repo)
}
