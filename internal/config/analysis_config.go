package config

import (
	"strconv"
	"time"
)

type AnalysisConfig interface {
	GetGapTermCount() int
	GetQueryTimeout() time.Duration
	GetProbeTimeout() time.Duration
}

type Analysis struct{}

var _ AnalysisConfig = Analysis{}

func (Analysis) GetGapTermCount() int {
	if v, err := strconv.Atoi(GetEnv("GAP_TERM_COUNT", "")); err == nil && v > 0 {
		return v
	}
	return 10
}

func (Analysis) GetQueryTimeout() time.Duration {
	return 30 * time.Second
}

func (Analysis) GetProbeTimeout() time.Duration {
	return 10 * time.Second
}
