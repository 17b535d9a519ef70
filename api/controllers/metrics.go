package controllers

import (
	"time"

	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
)

// report records duration plus a success or failure sample for one tool
// invocation. Safe on a nil ToolMetrics.
func report(m *metrics.ToolMetrics, tool string, start time.Time, err error) {
	m.ObserveDuration(tool, time.Since(start))
	if err != nil {
		code := string(pkgerrors.CodeInternal)
		if typed := pkgerrors.As(err); typed != nil {
			code = string(typed.Code())
		}
		m.IncFailure(tool, code)
		return
	}
	m.IncSuccess(tool)
}
