package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracewatch/tracewatch-backend/internal/models"
)

type staticApplications struct {
	apps map[int]models.Application
}

func (s *staticApplications) ApplicationByID(_ context.Context, id int) models.Application {
	return s.apps[id]
}

func TestMinutesBetween(t *testing.T) {
	s := NewDurationService(&staticApplications{apps: map[int]models.Application{
		1: {ApplicationID: 1, ApplicationCode: "order-service"},
	}})

	minutes, err := s.MinutesBetween(context.Background(), 1, 20260114100000, 20260114100959)
	require.NoError(t, err)
	assert.Equal(t, int64(9), minutes)
}

func TestMinutesBetweenClampsToRegisterTime(t *testing.T) {
	s := NewDurationService(&staticApplications{apps: map[int]models.Application{
		1: {ApplicationID: 1, RegisterTime: 20260114100500},
	}})

	minutes, err := s.MinutesBetween(context.Background(), 1, 20260114100000, 20260114101000)
	require.NoError(t, err)
	assert.Equal(t, int64(5), minutes)
}

func TestMinutesBetweenMinimumOneMinute(t *testing.T) {
	s := NewDurationService(&staticApplications{apps: map[int]models.Application{}})

	minutes, err := s.MinutesBetween(context.Background(), 1, 20260114100000, 20260114100030)
	require.NoError(t, err)
	assert.Equal(t, int64(1), minutes)
}

func TestMinutesBetweenParseError(t *testing.T) {
	s := NewDurationService(&staticApplications{apps: map[int]models.Application{}})

	_, err := s.MinutesBetween(context.Background(), 1, 99999999999999, 20260114100959)
	assert.Error(t, err)

	_, err = s.MinutesBetween(context.Background(), 1, 20260114100000, 99999999999999)
	assert.Error(t, err)
}
