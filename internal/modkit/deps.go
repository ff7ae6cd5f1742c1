// Package modkit builds API modules from shared deps and options
package modkit

import (
	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/core/figures"
	"fertilitydash/internal/platform/config"
	"fertilitydash/internal/platform/logger"
)

// Deps is what main hands every module
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Source  fertility.Source
	Figures figures.Config
}

// HasSource reports whether an upstream series source is wired
func (d Deps) HasSource() bool { return d.Source != nil }
