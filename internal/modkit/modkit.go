package modkit

import "fertilitydash/internal/modkit/module"

// Module is module.Module, re-exported so module packages need one import
type Module = module.Module

// Builder is the New signature every API module exposes
type Builder func(Deps, ...Option) Module
