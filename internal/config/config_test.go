package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_Validates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_RejectsBadMotionSum(t *testing.T) {
	cfg := Default()
	cfg.MotionSlip = 0.5
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadSensorSum(t *testing.T) {
	cfg := Default()
	cfg.SensorUnknown = 0.9
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveDepthBound(t *testing.T) {
	cfg := Default()
	cfg.PlanDepthBound = 0
	assert.Error(t, cfg.Validate())
}
